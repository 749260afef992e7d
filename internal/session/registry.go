package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"catalogadmin/internal/domain/products"
	"catalogadmin/internal/navigation"
	"catalogadmin/internal/notifications"
	"catalogadmin/internal/upload"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("session not found")

// Catalog is everything a session needs from the catalog store.
type Catalog interface {
	navigation.Catalog
	Patch(id int64, fn func(products.Product) (products.Product, bool)) (bool, error)
}

// Session is one operator's browser tab: its address bar, scroll memory,
// view controller, upload dialog and pending notifications.
type Session struct {
	ID      string
	Subject string

	Location      *navigation.MemoryLocation
	Memory        *navigation.MemoryScroll
	Viewport      *navigation.MemoryViewport
	Frames        *navigation.QueuedFrames
	Controller    *navigation.Controller
	Upload        *upload.Workflow
	Notifications *notifications.Queue

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

type Config struct {
	Catalog  Catalog
	Uploader upload.Uploader
	Logger   *zap.SugaredLogger

	PageSize        int
	ScrollThreshold int
	// IdleTimeout is how long an unused session is kept.
	IdleTimeout      time.Duration
	DismissAfter     time.Duration
	MaxUploadBytes   int64
	MaxNotifications int
}

type Registry struct {
	cfg Config
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(cfg Config) *Registry {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 12 * time.Hour
	}
	if cfg.ScrollThreshold == 0 {
		cfg.ScrollThreshold = 50
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	return &Registry{
		cfg:      cfg,
		now:      time.Now,
		sessions: map[string]*Session{},
	}
}

// Create opens a fresh session for subject.
func (r *Registry) Create(subject string) *Session {
	s := &Session{
		ID:            uuid.NewString(),
		Subject:       subject,
		Location:      navigation.NewMemoryLocation(nil),
		Memory:        &navigation.MemoryScroll{},
		Viewport:      &navigation.MemoryViewport{},
		Frames:        &navigation.QueuedFrames{},
		Notifications: notifications.NewQueue(r.cfg.MaxNotifications),
		lastSeen:      r.now(),
	}
	s.Controller = navigation.NewController(navigation.Config{
		Location:        s.Location,
		Memory:          s.Memory,
		Viewport:        s.Viewport,
		Frames:          s.Frames,
		Catalog:         r.cfg.Catalog,
		PageSize:        r.cfg.PageSize,
		ScrollThreshold: r.cfg.ScrollThreshold,
		SmoothRestore:   true,
	})
	s.Upload = upload.NewWorkflow(upload.Config{
		Uploader:     r.cfg.Uploader,
		Catalog:      r.cfg.Catalog,
		Notifier:     s.Notifications,
		Logger:       r.cfg.Logger.With("session_id", s.ID),
		DismissAfter: r.cfg.DismissAfter,
		MaxBytes:     r.cfg.MaxUploadBytes,
	})

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.cfg.Logger.Infow("session created", "session_id", s.ID, "subject", subject)
	return s
}

// Get returns a live session and marks it as used.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	now := r.now()
	if now.Sub(s.idleSince()) > r.cfg.IdleTimeout {
		r.Remove(id)
		return nil, ErrNotFound
	}
	s.touch(now)
	return s, nil
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		s.Upload.Close()
	}
}

// Evict removes every session idle for longer than the timeout.
func (r *Registry) Evict() int {
	now := r.now()

	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if now.Sub(s.idleSince()) > r.cfg.IdleTimeout {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Upload.Close()
	}
	return len(expired)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Reconcile makes every session's view follow a freshly loaded catalog.
func (r *Registry) Reconcile() {
	r.mu.RLock()
	all := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	r.mu.RUnlock()

	for _, s := range all {
		s.Controller.Reconcile()
	}
}

// Run evicts idle sessions every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Evict(); n > 0 {
				r.cfg.Logger.Infow("evicted idle sessions", "count", n)
			}
		}
	}
}
