// Package stock tracks the reorder list: medicines the shop is running
// out of, keyed by name, with a free-text quantity note and an OrderNow
// flag. The table is persisted as a whole snapshot after every change.
package stock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/farooq9092/Sajid-medical-store/internal/core"
	"github.com/farooq9092/Sajid-medical-store/internal/events"
	"github.com/farooq9092/Sajid-medical-store/internal/tabular"
)

// Tracker is the keyed stock table. Name is unique: an upsert for an
// existing name replaces the row in place, preserving its position.
type Tracker struct {
	mu     sync.Mutex
	store  tabular.Store
	key    string
	events *events.Client // optional; nil skips publishing
	items  []core.StockItem
}

// Open loads the tracker from the store; an unreadable table starts empty.
func Open(ctx context.Context, store tabular.Store, key string, ev *events.Client) *Tracker {
	t := store.Load(ctx, key, tabular.StockSchema)
	tr := &Tracker{
		store:  store,
		key:    key,
		events: ev,
		items:  itemsFromTable(t),
	}
	slog.InfoContext(ctx, "Stock tracker opened", "key", key, "items", len(tr.items))
	return tr
}

// Upsert records a medicine on the list. An existing name is replaced in
// place; a new name is appended. Status is OrderNow when wantsReorder is
// set, OK otherwise. The table only advances once the snapshot write
// succeeds.
func (tr *Tracker) Upsert(ctx context.Context, name string, typ core.StockType, quantity string, wantsReorder bool) error {
	item := core.StockItem{
		Name:     name,
		Type:     typ,
		Quantity: quantity,
		Status:   core.StatusOK,
	}
	if wantsReorder {
		item.Status = core.StatusOrderNow
	}
	if err := item.Validate(); err != nil {
		return err
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()

	next := append([]core.StockItem(nil), tr.items...)
	replaced := false
	for i := range next {
		if next[i].Name == name {
			next[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, item)
	}

	desc := fmt.Sprintf("Upsert stock item: %s", name)
	if err := tr.persist(ctx, next, desc); err != nil {
		return err
	}
	tr.items = next
	tr.publish(ctx, desc)
	return nil
}

// Delete removes the row with the given name.
func (tr *Tracker) Delete(ctx context.Context, name string) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	idx := -1
	for i := range tr.items {
		if tr.items[i].Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return core.ErrUnknownItem
	}

	next := make([]core.StockItem, 0, len(tr.items)-1)
	next = append(next, tr.items[:idx]...)
	next = append(next, tr.items[idx+1:]...)

	desc := fmt.Sprintf("Delete stock item: %s", name)
	if err := tr.persist(ctx, next, desc); err != nil {
		return err
	}
	tr.items = next
	tr.publish(ctx, desc)
	return nil
}

// All returns the rows in table order. The slice is a copy.
func (tr *Tracker) All() []core.StockItem {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]core.StockItem(nil), tr.items...)
}

// OrdersNeeded returns the rows flagged OrderNow, in table order. It is
// a view computed on demand, never materialized.
func (tr *Tracker) OrdersNeeded() []core.StockItem {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	var out []core.StockItem
	for _, it := range tr.items {
		if it.NeedsReorder() {
			out = append(out, it)
		}
	}
	return out
}

func (tr *Tracker) persist(ctx context.Context, candidate []core.StockItem, desc string) error {
	if err := tr.store.Save(ctx, tr.key, tableFromItems(candidate), desc); err != nil {
		slog.ErrorContext(ctx, "Stock snapshot write failed, mutation rolled back",
			"key", tr.key, "error", err)
		return fmt.Errorf("persist stock: %w", err)
	}
	return nil
}

func (tr *Tracker) publish(ctx context.Context, desc string) {
	if tr.events == nil {
		return
	}
	if err := tr.events.PublishTableChanged(ctx, tr.key, desc); err != nil {
		slog.ErrorContext(ctx, "Failed to publish stock change",
			"key", tr.key, "error", err)
	}
}

func tableFromItems(items []core.StockItem) tabular.Table {
	t := tabular.Empty(tabular.StockSchema)
	for _, it := range items {
		t.Rows = append(t.Rows, []string{it.Name, string(it.Type), it.Quantity, string(it.Status)})
	}
	return t
}

func itemsFromTable(t tabular.Table) []core.StockItem {
	var items []core.StockItem
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		name := row[0]
		if name == "" || seen[name] {
			// Name is the key; a duplicate row in a hand-edited file
			// would break upsert, so only the first occurrence survives.
			continue
		}
		seen[name] = true
		items = append(items, core.StockItem{
			Name:     name,
			Type:     core.ParseStockType(row[1]),
			Quantity: row[2],
			Status:   core.ParseStockStatus(row[3]),
		})
	}
	return items
}
