// Package services contains domain services: operations that belong to the
// domain but do not fit on a single aggregate.
package services

import (
	"sync"
	"time"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"
)

// OrderRegistry is the single authority for in-flight orders prior to durable
// commit. It owns identifier allocation (strictly increasing, never reused)
// and keeps an in-memory index of active orders keyed by id.
//
// Persistence remains the source of truth: the registry is a write-through
// cache seeded from storage at startup, never an independent store. Callers
// performing read-modify-write cycles on one order serialize through
// Lock/Unlock for that id.
//
// All methods are safe for concurrent use. Identifier allocation and
// registration happen atomically under one mutex, so concurrent creators can
// neither receive the same id nor lose a registration.
type OrderRegistry struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]*order.Order
	locks  map[int64]*sync.Mutex
}

// NewOrderRegistry creates a registry whose next allocated identifier is
// lastID+1. lastID is the highest identifier already present in storage,
// zero for an empty store.
func NewOrderRegistry(lastID int64) *OrderRegistry {
	return &OrderRegistry{
		nextID: lastID,
		orders: make(map[int64]*order.Order),
		locks:  make(map[int64]*sync.Mutex),
	}
}

// Create allocates the next identifier, builds a Pending order for the user,
// and registers it. Allocation and registration are a single atomic step; no
// identifier is consumed when construction fails.
func (r *OrderRegistry) Create(userID int64, orderTime time.Time) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, err := order.NewOrder(r.nextID+1, userID, orderTime)
	if err != nil {
		return nil, err
	}

	r.nextID++
	r.orders[o.ID()] = o
	return o, nil
}

// Get returns the registered order with the given id.
func (r *OrderRegistry) Get(id int64) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id)
	}
	return o, nil
}

// Update replaces the registered order with the same id. An update never
// creates: an unregistered id fails with a not-found error.
func (r *OrderRegistry) Update(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[o.ID()]; !ok {
		return errs.NewObjectNotFoundError("orderId", o.ID())
	}

	r.orders[o.ID()] = o
	return nil
}

// Track registers an order restored from storage without allocating an
// identifier. Used to fill the cache on read-through; unlike Update it
// inserts unconditionally.
func (r *OrderRegistry) Track(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[o.ID()] = o
	return nil
}

// Remove drops the order from the in-flight index. Removing an unknown id is
// a no-op; the durable record is untouched either way.
func (r *OrderRegistry) Remove(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.orders, id)
}

// Lock acquires the per-id mutex serializing read-modify-write cycles on one
// order. Operations on distinct ids proceed concurrently.
func (r *OrderRegistry) Lock(id int64) {
	r.lockFor(id).Lock()
}

// Unlock releases the per-id mutex acquired by Lock.
func (r *OrderRegistry) Unlock(id int64) {
	r.lockFor(id).Unlock()
}

func (r *OrderRegistry) lockFor(id int64) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locks[id]
	if !ok {
		l = &sync.Mutex{}
		r.locks[id] = l
	}
	return l
}
