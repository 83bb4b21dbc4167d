package platform

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable is returned when no system clipboard can be used.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard writes text to a clipboard.
type Clipboard interface {
	Available() bool
	WriteAll(text string) error
}

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// clipboardUnsupported reports whether the host has no clipboard utility.
var clipboardUnsupported = func() bool { return clipboard.Unsupported }

// SystemClipboard uses the host clipboard (pbcopy, xclip, xsel, wl-copy or the Windows API).
type SystemClipboard struct{}

func (SystemClipboard) Available() bool {
	return !clipboardUnsupported()
}

func (c SystemClipboard) WriteAll(text string) error {
	if !c.Available() {
		return ErrClipboardUnavailable
	}
	return clipboardWriteAll(text)
}

// NoopClipboard is never available. Servers use it since they have no desktop session.
type NoopClipboard struct{}

func (NoopClipboard) Available() bool { return false }

func (NoopClipboard) WriteAll(string) error { return ErrClipboardUnavailable }
