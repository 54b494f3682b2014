package commands_test

import (
	"context"
	"sync"

	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/core/ports"
	"tableside/internal/pkg/errs"
)

// memStore is a process-local stand-in for the Postgres adapter, storing
// detached copies of aggregates so handler-side mutations only become visible
// through Update, the way a real data store behaves.
type memStore struct {
	mu       sync.Mutex
	tables   map[string]*table.Table
	orders   map[string]*order.Order
	items    map[string]*menu.MenuItem
	orderSeq []string
}

func newMemStore() *memStore {
	return &memStore{
		tables: make(map[string]*table.Table),
		orders: make(map[string]*order.Order),
		items:  make(map[string]*menu.MenuItem),
	}
}

func copyTable(t *table.Table) *table.Table {
	cp, err := table.RestoreTable(t.ID(), t.TenantID(), t.Number(), t.Capacity(), t.Occupancy(), t.OccupantName())
	if err != nil {
		panic(err)
	}
	return cp
}

func copyOrder(o *order.Order) *order.Order {
	cp, err := order.RestoreOrder(o.ID(), o.TenantID(), o.TableID(), o.OccupantName(), o.Lines(), o.Status(), o.CreatedAt())
	if err != nil {
		panic(err)
	}
	return cp
}

func copyMenuItem(m *menu.MenuItem) *menu.MenuItem {
	cp, err := menu.RestoreMenuItem(m.ID(), m.TenantID(), m.Category(), m.Name(), m.Description(), m.Price(), m.IsAvailable())
	if err != nil {
		panic(err)
	}
	return cp
}

func (s *memStore) putTable(t *table.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t.ID().String()] = copyTable(t)
}

func (s *memStore) putOrder(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[o.ID().String()]; !exists {
		s.orderSeq = append(s.orderSeq, o.ID().String())
	}
	s.orders[o.ID().String()] = copyOrder(o)
}

func (s *memStore) putMenuItem(m *menu.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[m.ID().String()] = copyMenuItem(m)
}

// memUoW satisfies every unit-of-work shape the command handlers need.
// Transaction control is a no-op: the per-entity locks in the handlers already
// serialize the interesting interleavings.
type memUoW struct {
	store *memStore
}

func (u *memUoW) Begin(context.Context) error    { return nil }
func (u *memUoW) Commit(context.Context) error   { return nil }
func (u *memUoW) Rollback(context.Context) error { return nil }

func (u *memUoW) TableRepository() ports.TableRepository       { return &memTableRepo{store: u.store} }
func (u *memUoW) OrderRepository() ports.OrderRepository       { return &memOrderRepo{store: u.store} }
func (u *memUoW) MenuItemRepository() ports.MenuItemRepository { return &memMenuRepo{store: u.store} }

type memUoWFactory struct {
	store *memStore
}

func (f *memUoWFactory) Create() commands.UoW { return &memUoW{store: f.store} }

type memTableUoWFactory struct {
	store *memStore
}

func (f *memTableUoWFactory) Create() commands.TableUoW { return &memUoW{store: f.store} }

type memOrderUoWFactory struct {
	store *memStore
}

func (f *memOrderUoWFactory) Create() commands.OrderUoW { return &memUoW{store: f.store} }

type memTableRepo struct {
	store *memStore
}

func (r *memTableRepo) Add(_ context.Context, t *table.Table) error {
	r.store.putTable(t)
	return nil
}

func (r *memTableRepo) Update(_ context.Context, t *table.Table) error {
	r.store.putTable(t)
	return nil
}

func (r *memTableRepo) Get(_ context.Context, id kernel.UUID) (*table.Table, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.tables[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("table", id.String())
	}
	return copyTable(t), nil
}

func (r *memTableRepo) GetAllOccupied(context.Context) ([]*table.Table, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var occupied []*table.Table
	for _, t := range r.store.tables {
		if t.Occupancy() == table.Occupied {
			occupied = append(occupied, copyTable(t))
		}
	}
	return occupied, nil
}

type memOrderRepo struct {
	store *memStore
}

func (r *memOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.store.putOrder(o)
	return nil
}

func (r *memOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.store.putOrder(o)
	return nil
}

func (r *memOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return copyOrder(o), nil
}

func (r *memOrderRepo) GetAllByStatuses(_ context.Context, tenantID kernel.UUID, statuses []order.Status) ([]*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*order.Order
	for _, id := range r.store.orderSeq {
		o := r.store.orders[id]
		if !o.TenantID().IsEqual(tenantID) {
			continue
		}
		for _, s := range statuses {
			if o.Status() == s {
				result = append(result, copyOrder(o))
				break
			}
		}
	}
	return result, nil
}

func (r *memOrderRepo) GetLatestForTable(_ context.Context, tableID kernel.UUID) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := len(r.store.orderSeq) - 1; i >= 0; i-- {
		o := r.store.orders[r.store.orderSeq[i]]
		if o.TableID().IsEqual(tableID) {
			return copyOrder(o), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order", "latest for table "+tableID.String())
}

type memMenuRepo struct {
	store *memStore
}

func (r *memMenuRepo) Add(_ context.Context, m *menu.MenuItem) error {
	r.store.putMenuItem(m)
	return nil
}

func (r *memMenuRepo) Get(_ context.Context, id kernel.UUID) (*menu.MenuItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	m, ok := r.store.items[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("menu item", id.String())
	}
	return copyMenuItem(m), nil
}

func (r *memMenuRepo) GetAllAvailable(_ context.Context, tenantID kernel.UUID) ([]*menu.MenuItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*menu.MenuItem
	for _, m := range r.store.items {
		if m.TenantID().IsEqual(tenantID) && m.IsAvailable() {
			result = append(result, copyMenuItem(m))
		}
	}
	return result, nil
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event ports.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Events() []ports.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.Event(nil), p.events...)
}
