// Package ledger holds the daily sale/expense register: an ordered book
// of entries persisted as a whole-table snapshot after every mutation,
// and the aggregation views computed over it.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/farooq9092/Sajid-medical-store/internal/core"
	"github.com/farooq9092/Sajid-medical-store/internal/events"
	"github.com/farooq9092/Sajid-medical-store/internal/tabular"
)

// Book is the ledger record store. One coarse mutex guards the whole
// mutate-then-persist sequence: the backing store has no transactions,
// only last-write-wins overwrites of the full table.
type Book struct {
	mu      sync.Mutex
	store   tabular.Store
	key     string
	events  *events.Client // optional; nil skips publishing
	entries []core.LedgerEntry
}

// Open loads the book from the store. A missing or unreadable table
// starts an empty book; that is the collaborator's contract, not an error.
func Open(ctx context.Context, store tabular.Store, key string, ev *events.Client) *Book {
	t := store.Load(ctx, key, tabular.LedgerSchema)
	b := &Book{
		store:   store,
		key:     key,
		events:  ev,
		entries: entriesFromTable(t),
	}
	slog.InfoContext(ctx, "Ledger book opened", "key", key, "entries", len(b.entries))
	return b
}

// Append validates the entry and adds it to the end of the book. The
// in-memory book only advances once the snapshot write succeeds.
func (b *Book) Append(ctx context.Context, e core.LedgerEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	next := make([]core.LedgerEntry, 0, len(b.entries)+1)
	next = append(next, b.entries...)
	next = append(next, e)

	desc := fmt.Sprintf("Add %s entry: %s", e.Category, e.Item)
	if err := b.persist(ctx, next, desc); err != nil {
		return err
	}
	b.entries = next
	b.publish(ctx, desc)
	return nil
}

// UpdateAt replaces sale and cost of the entry at pos. Profit is
// recomputed for sale-bearing entries and stays zero for expense-only
// ones regardless of the new amounts.
func (b *Book) UpdateAt(ctx context.Context, pos int, sale, cost core.Money) error {
	if sale.Paisa < 0 || cost.Paisa < 0 {
		return core.ErrInvalidAmount
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if pos < 0 || pos >= len(b.entries) {
		return core.ErrOutOfRange
	}

	next := append([]core.LedgerEntry(nil), b.entries...)
	e := next[pos]
	e.Sale = sale
	e.Cost = cost
	if e.Kind() == core.SaleBearing {
		e.Profit = sale.Sub(cost)
	} else {
		e.Profit = core.Money{}
	}
	next[pos] = e

	desc := fmt.Sprintf("Update entry %d: %s", pos, e.Item)
	if err := b.persist(ctx, next, desc); err != nil {
		return err
	}
	b.entries = next
	b.publish(ctx, desc)
	return nil
}

// DeleteAt removes the entry at pos.
func (b *Book) DeleteAt(ctx context.Context, pos int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if pos < 0 || pos >= len(b.entries) {
		return core.ErrOutOfRange
	}

	next := make([]core.LedgerEntry, 0, len(b.entries)-1)
	next = append(next, b.entries[:pos]...)
	next = append(next, b.entries[pos+1:]...)

	desc := fmt.Sprintf("Delete entry %d", pos)
	if err := b.persist(ctx, next, desc); err != nil {
		return err
	}
	b.entries = next
	b.publish(ctx, desc)
	return nil
}

// All returns the entries in insertion order. The slice is a copy.
func (b *Book) All() []core.LedgerEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]core.LedgerEntry(nil), b.entries...)
}

// Len returns the number of entries in the book.
func (b *Book) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// persist writes the candidate state as a full snapshot. The caller only
// commits the candidate to memory when persist succeeds, so a failed
// write leaves memory and durable state consistent.
func (b *Book) persist(ctx context.Context, candidate []core.LedgerEntry, desc string) error {
	if err := b.store.Save(ctx, b.key, tableFromEntries(candidate), desc); err != nil {
		slog.ErrorContext(ctx, "Ledger snapshot write failed, mutation rolled back",
			"key", b.key, "error", err)
		return fmt.Errorf("persist ledger: %w", err)
	}
	return nil
}

// publish announces the change. Failure is logged, never propagated: the
// snapshot is already durable and the mirror catches up on the next event.
func (b *Book) publish(ctx context.Context, desc string) {
	if b.events == nil {
		return
	}
	if err := b.events.PublishTableChanged(ctx, b.key, desc); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger change",
			"key", b.key, "error", err)
	}
}
