package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Storage is a mock for slab.Storage.
type Storage struct {
	mock.Mock
}

func (m *Storage) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *Storage) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// Clipboard is a mock for platform.Clipboard.
type Clipboard struct {
	mock.Mock
}

func (m *Clipboard) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *Clipboard) WriteAll(text string) error {
	args := m.Called(text)
	return args.Error(0)
}

// Delivery is a mock for platform.Delivery.
type Delivery struct {
	mock.Mock
}

func (m *Delivery) Deliver(ctx context.Context, name, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, name, contentType, data)
	return args.String(0), args.Error(1)
}
