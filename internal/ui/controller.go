package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rpggio/slabstock/internal/domain/slab"
	"github.com/rpggio/slabstock/internal/platform"
)

// Notification texts.
const (
	MsgImportComplete    = "Import complete"
	MsgCopied            = "Copied JSON for slab"
	MsgCopiedFallback    = "Copied JSON for slab (fallback logged to console)"
	MsgDeleteConfirmText = "Are you sure?"
)

// Inventory is the subset of slab.Service the controller drives.
type Inventory interface {
	Add(ctx context.Context, req slab.AddRequest) (*slab.Slab, error)
	Remove(ctx context.Context, id string) bool
	ExportCSV() string
	ImportJSON(ctx context.Context, payload []byte) (slab.ImportResult, error)
	SlabJSON(id string) ([]byte, error)
}

// Confirmer asks the user a yes/no question.
type Confirmer func(question string) (bool, error)

// CopyResult describes how a copy request was satisfied.
type CopyResult struct {
	JSON      string `json:"json"`
	Clipboard bool   `json:"clipboard"`
	Message   string `json:"message,omitempty"`
}

// Controller performs inventory actions and reports their outcome to the user.
type Controller struct {
	inventory Inventory
	clipboard platform.Clipboard
	delivery  platform.Delivery
	notifier  platform.Notifier
	logger    *slog.Logger
}

// Deps bundles the collaborators of a Controller. Nil fields get inert defaults.
type Deps struct {
	Clipboard platform.Clipboard
	Delivery  platform.Delivery
	Notifier  platform.Notifier
	Logger    *slog.Logger
}

// NewController creates a controller over inventory.
func NewController(inventory Inventory, deps Deps) *Controller {
	if deps.Clipboard == nil {
		deps.Clipboard = platform.NoopClipboard{}
	}
	if deps.Delivery == nil {
		deps.Delivery = platform.WriterDelivery{W: io.Discard}
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Notifier == nil {
		deps.Notifier = platform.LogNotifier{Logger: deps.Logger}
	}
	return &Controller{
		inventory: inventory,
		clipboard: deps.Clipboard,
		delivery:  deps.Delivery,
		notifier:  deps.Notifier,
		logger:    deps.Logger,
	}
}

// Submit adds a slab from the form. The form is cleared only on success;
// on a validation failure the user is notified and the form is left as is.
// Colors and widths outside the form's catalog are accepted with a warning.
func (c *Controller) Submit(ctx context.Context, form *Form) (*slab.Slab, error) {
	rec, err := c.inventory.Add(ctx, form.Request())
	if err != nil {
		c.notifier.Notify(slab.UserMessage(err))
		return nil, err
	}
	if catalog := form.Catalog(); !catalog.HasColor(rec.Color) || !catalog.HasWidth(rec.Width) {
		c.logger.Warn("slab outside catalog", "id", rec.ID, "color", rec.Color, "width", rec.Width)
	}
	form.Clear()
	return rec, nil
}

// Delete removes a slab after confirmation. A nil confirm deletes without asking.
func (c *Controller) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if confirm == nil {
		c.logger.Warn("confirmation unavailable, deleting without confirmation", "id", id)
	} else {
		ok, err := confirm(MsgDeleteConfirmText)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return c.inventory.Remove(ctx, id), nil
}

// Export renders the CSV and hands it to the configured delivery.
func (c *Controller) Export(ctx context.Context) (string, error) {
	csv := c.inventory.ExportCSV()
	where, err := c.delivery.Deliver(ctx, slab.ExportFileName, slab.ExportMIMEType, []byte(csv))
	if err != nil {
		return "", fmt.Errorf("deliver export: %w", err)
	}
	c.logger.Info("export delivered", "location", where)
	return where, nil
}

// Import reads a JSON file and merges it into the inventory.
func (c *Controller) Import(ctx context.Context, r io.Reader) (slab.ImportResult, error) {
	payload, err := io.ReadAll(r)
	if err != nil {
		return slab.ImportResult{}, fmt.Errorf("read import: %w", err)
	}
	result, err := c.inventory.ImportJSON(ctx, payload)
	if err != nil {
		c.notifier.Notify(slab.UserMessage(err))
		return slab.ImportResult{}, err
	}
	c.notifier.Notify(MsgImportComplete)
	return result, nil
}

// Copy puts one slab's JSON on the clipboard. When the clipboard is missing or
// the write fails the JSON is logged instead and the user is told so.
func (c *Controller) Copy(id string) (CopyResult, error) {
	data, err := c.inventory.SlabJSON(id)
	if err != nil {
		c.notifier.Notify(slab.UserMessage(err))
		return CopyResult{}, err
	}
	result := CopyResult{JSON: string(data)}

	if c.clipboard.Available() {
		err := c.clipboard.WriteAll(result.JSON)
		if err == nil {
			result.Clipboard = true
			result.Message = MsgCopied
			c.notifier.Notify(result.Message)
			return result, nil
		}
		c.logger.Warn("clipboard write failed", "id", id, "error", err)
	}

	c.logger.Info("slab JSON (clipboard unavailable)", "id", id, "json", result.JSON)
	result.Message = MsgCopiedFallback
	c.notifier.Notify(result.Message)
	return result, nil
}
