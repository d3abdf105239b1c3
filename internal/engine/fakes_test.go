package engine_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/aretw0/shopfront/pkg/domain"
)

// callLog records the order of external effects so tests can assert that
// persistence happens after side effects.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeCatalog struct {
	log      *callLog
	products []domain.Product
	files    map[string]string
	err      error
}

func (f *fakeCatalog) Products(ctx context.Context) ([]domain.Product, error) {
	if f.log != nil {
		f.log.add("catalog.Products")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeCatalog) Product(ctx context.Context, id string) (*domain.Product, error) {
	if f.log != nil {
		f.log.add("catalog.Product " + id)
	}
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, &domain.APIError{Status: http.StatusNotFound, Body: "no such product"}
}

func (f *fakeCatalog) FileURL(ctx context.Context, id string) (string, error) {
	if f.log != nil {
		f.log.add("catalog.FileURL " + id)
	}
	if f.err != nil {
		return "", f.err
	}
	url, ok := f.files[id]
	if !ok {
		return "", &domain.APIError{Status: http.StatusNotFound, Body: "no such file"}
	}
	return url, nil
}

type addCall struct {
	cartKey   string
	productID string
	quantity  int
}

type fakeCarts struct {
	log         *callLog
	items       map[string][]domain.CartItem
	totals      map[string]string
	adds        []addCall
	removals    []string
	deletions   []string
	cartFetches int
	err         error
}

func newFakeCarts(log *callLog) *fakeCarts {
	return &fakeCarts{
		log:    log,
		items:  make(map[string][]domain.CartItem),
		totals: make(map[string]string),
	}
}

func (f *fakeCarts) Cart(ctx context.Context, cartKey string) (*domain.Cart, error) {
	if f.log != nil {
		f.log.add("carts.Cart")
	}
	if f.err != nil {
		return nil, f.err
	}
	f.cartFetches++
	return &domain.Cart{ID: cartKey, FormattedTotal: f.totals[cartKey]}, nil
}

func (f *fakeCarts) Items(ctx context.Context, cartKey string) ([]domain.CartItem, error) {
	if f.log != nil {
		f.log.add("carts.Items")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.items[cartKey], nil
}

func (f *fakeCarts) AddItem(ctx context.Context, cartKey, productID string, quantity int) error {
	if f.log != nil {
		f.log.add("carts.AddItem")
	}
	if f.err != nil {
		return f.err
	}
	f.adds = append(f.adds, addCall{cartKey: cartKey, productID: productID, quantity: quantity})
	return nil
}

func (f *fakeCarts) RemoveItem(ctx context.Context, cartKey, itemID string) error {
	if f.log != nil {
		f.log.add("carts.RemoveItem")
	}
	if f.err != nil {
		return f.err
	}
	f.removals = append(f.removals, itemID)
	items := f.items[cartKey]
	kept := items[:0]
	for _, it := range items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	f.items[cartKey] = kept
	return nil
}

func (f *fakeCarts) Delete(ctx context.Context, cartKey string) (bool, error) {
	if f.log != nil {
		f.log.add("carts.Delete")
	}
	if f.err != nil {
		return false, f.err
	}
	f.deletions = append(f.deletions, cartKey)
	_, existed := f.items[cartKey]
	delete(f.items, cartKey)
	return existed, nil
}

type fakeCustomers struct {
	log     *callLog
	nextID  string
	created []domain.CustomerInfo
	updated map[string]domain.CustomerInfo
	err     error
}

func newFakeCustomers(log *callLog) *fakeCustomers {
	return &fakeCustomers{log: log, nextID: "cust-1", updated: make(map[string]domain.CustomerInfo)}
}

func (f *fakeCustomers) Create(ctx context.Context, info domain.CustomerInfo) (string, error) {
	if f.log != nil {
		f.log.add("customers.Create")
	}
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, info)
	return f.nextID, nil
}

func (f *fakeCustomers) Update(ctx context.Context, id string, info domain.CustomerInfo) error {
	if f.log != nil {
		f.log.add("customers.Update")
	}
	if f.err != nil {
		return f.err
	}
	f.updated[id] = info
	return nil
}

// loggingStore wraps a SessionStore to record writes and optionally fail them.
type loggingStore struct {
	inner      sessionStore
	log        *callLog
	setErr     error
	stateReads int
}

type sessionStore interface {
	State(ctx context.Context, conversationID string) (domain.State, error)
	SetState(ctx context.Context, conversationID string, state domain.State) error
	CustomerID(ctx context.Context, conversationID string) (string, error)
	SetCustomerID(ctx context.Context, conversationID, customerID string) error
}

func (s *loggingStore) State(ctx context.Context, conversationID string) (domain.State, error) {
	s.stateReads++
	return s.inner.State(ctx, conversationID)
}

func (s *loggingStore) SetState(ctx context.Context, conversationID string, state domain.State) error {
	if s.setErr != nil {
		return s.setErr
	}
	if s.log != nil {
		s.log.add(fmt.Sprintf("store.SetState %s", state))
	}
	return s.inner.SetState(ctx, conversationID, state)
}

func (s *loggingStore) CustomerID(ctx context.Context, conversationID string) (string, error) {
	return s.inner.CustomerID(ctx, conversationID)
}

func (s *loggingStore) SetCustomerID(ctx context.Context, conversationID, customerID string) error {
	if s.log != nil {
		s.log.add("store.SetCustomerID")
	}
	return s.inner.SetCustomerID(ctx, conversationID, customerID)
}
