// Package worker mirrors ledger and stock tables from the primary store
// to the Google Sheets mirror in response to change events.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/farooq9092/Sajid-medical-store/internal/events"
	"github.com/farooq9092/Sajid-medical-store/internal/tabular"
)

// MirrorWorker copies whole tables from the primary store into a mirror
// store. The primary store is the durability boundary; the mirror is a
// read-only convenience copy, so every sync is a full overwrite.
type MirrorWorker struct {
	primary tabular.Store
	mirror  tabular.Store
	schemas map[string][]string
}

func NewMirrorWorker(primary, mirror tabular.Store, schemas map[string][]string) *MirrorWorker {
	return &MirrorWorker{
		primary: primary,
		mirror:  mirror,
		schemas: schemas,
	}
}

// HandleTableChanged processes a single change notification by reloading
// the table from the primary store and overwriting the mirror copy.
func (w *MirrorWorker) HandleTableChanged(ctx context.Context, msg *events.TableChangedMessage) error {
	schema, ok := w.schemas[msg.Key]
	if !ok {
		slog.WarnContext(ctx, "Ignoring change for unknown table key", "key", msg.Key)
		return nil
	}

	slog.InfoContext(ctx, "Processing table change",
		"key", msg.Key,
		"change", msg.ChangeDescription)

	table := w.primary.Load(ctx, msg.Key, schema)

	description := msg.ChangeDescription
	if description == "" {
		description = fmt.Sprintf("Mirror %s", msg.Key)
	}
	if err := w.mirror.Save(ctx, msg.Key, table, description); err != nil {
		return fmt.Errorf("save %s to mirror: %w", msg.Key, err)
	}

	slog.InfoContext(ctx, "Mirrored table",
		"key", msg.Key,
		"rows", len(table.Rows))

	return nil
}

// SyncAll mirrors every known table regardless of pending events. Used at
// startup and on a periodic timer to recover from missed messages.
func (w *MirrorWorker) SyncAll(ctx context.Context) error {
	var firstErr error
	for key, schema := range w.schemas {
		table := w.primary.Load(ctx, key, schema)
		if err := w.mirror.Save(ctx, key, table, fmt.Sprintf("Full resync of %s", key)); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror table", "key", key, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("mirror %s: %w", key, err)
			}
			continue
		}
		slog.InfoContext(ctx, "Mirrored table", "key", key, "rows", len(table.Rows))
	}
	return firstErr
}
