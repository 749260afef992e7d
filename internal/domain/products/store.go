package products

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotReady      = errors.New("catalog is not ready")
	ErrNotLoaded     = errors.New("catalog has not been loaded")
	ErrAlreadyLoaded = errors.New("catalog already loaded, use refetch")
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Fetcher loads the full catalog from wherever it is owned.
// Implemented by catalogapi.HTTPClient.
type Fetcher interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// Snapshot is a consistent read of the store.
type Snapshot struct {
	State    State
	Err      error
	Products []Product
}

// Store holds the in-memory catalog. It moves Idle -> Loading -> {Ready, Failed};
// Load is the single entry point and Refetch the only way back into Loading.
type Store struct {
	fetcher Fetcher
	logger  *zap.SugaredLogger
	group   singleflight.Group

	mu       sync.RWMutex
	state    State
	err      error
	products []Product
	index    map[int64]int
}

func NewStore(fetcher Fetcher, logger *zap.SugaredLogger) *Store {
	return &Store{
		fetcher: fetcher,
		logger:  logger,
		state:   StateIdle,
		index:   map[int64]int{},
	}
}

// Load performs the initial fetch. It may be called once.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrAlreadyLoaded
	}
	s.state = StateLoading
	s.mu.Unlock()

	return s.fetch(ctx)
}

// Refetch replaces the whole catalog. Concurrent callers share one request.
func (s *Store) Refetch(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateIdle {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	s.mu.Unlock()

	return s.fetch(ctx)
}

// fetch runs one shared request. State is only written inside the flight, so
// a caller joining a flight that already finished leaves the result intact.
func (s *Store) fetch(ctx context.Context) error {
	_, err, _ := s.group.Do("catalog", func() (any, error) {
		s.mu.Lock()
		s.state = StateLoading
		s.err = nil
		s.mu.Unlock()

		list, err := s.fetcher.ListProducts(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()

		if err != nil {
			s.state = StateFailed
			s.err = err
			s.products = nil
			s.index = map[int64]int{}
			return nil, err
		}

		accepted, dropped := Sanitize(list)
		if dropped > 0 {
			s.logger.Warnw("dropped malformed products from catalog", "dropped", dropped, "accepted", len(accepted))
		}

		s.state = StateReady
		s.err = nil
		s.products = accepted
		s.index = make(map[int64]int, len(accepted))
		for i, p := range accepted {
			s.index[p.ID] = i
		}
		s.logger.Infow("catalog loaded", "products", len(accepted))
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	return nil
}

// UpdateOne replaces the product with the same id. It reports false when the
// catalog holds no such product. Replacement is total; the last call wins.
func (s *Store) UpdateOne(p Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return false, ErrNotReady
	}
	i, ok := s.index[p.ID]
	if !ok {
		return false, nil
	}
	s.products[i] = p.Clone()
	return true, nil
}

// Patch applies fn to the latest copy of the product and stores the result,
// all under one lock so concurrent patches of different fields are kept. It
// reports false when the product is absent or fn declines the change.
func (s *Store) Patch(id int64, fn func(Product) (Product, bool)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return false, ErrNotReady
	}
	i, ok := s.index[id]
	if !ok {
		return false, nil
	}
	updated, ok := fn(s.products[i].Clone())
	if !ok {
		return false, nil
	}
	updated.ID = id
	s.products[i] = updated.Clone()
	return true, nil
}

// Get returns a copy of the latest version of the product.
func (s *Store) Get(id int64) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateReady {
		return Product{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return Product{}, false
	}
	return s.products[i].Clone(), true
}

// List returns copies of all products in server order.
func (s *Store) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.products)
}

func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateReady
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		State:    s.state,
		Err:      s.err,
		Products: cloneAll(s.products),
	}
}

func cloneAll(list []Product) []Product {
	out := make([]Product, len(list))
	for i, p := range list {
		out[i] = p.Clone()
	}
	return out
}

// Sanitize drops entities that downstream code cannot render: a non-positive
// id, or missing name/description translations with no English name.
func Sanitize(list []Product) ([]Product, int) {
	out := make([]Product, 0, len(list))
	for _, p := range list {
		if p.ID <= 0 || p.NameTranslations == nil || p.DescriptionTranslations == nil {
			continue
		}
		if _, ok := p.NameTranslations[DefaultLanguage]; !ok {
			continue
		}
		if p.Variants == nil {
			p.Variants = []Variant{}
		}
		out = append(out, p)
	}
	return out, len(list) - len(out)
}
