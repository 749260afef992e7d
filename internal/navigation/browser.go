package navigation

import (
	"net/url"
	"sync"

	"catalogadmin/internal/domain/products"
)

// Location is the address bar. Replace rewrites the current history entry's
// query without navigating.
type Location interface {
	Query() url.Values
	Replace(q url.Values)
}

// ScrollMemory is session-scoped storage for one saved scroll offset.
type ScrollMemory interface {
	Save(y int)
	Load() (int, bool)
	Clear()
}

// Viewport exposes the vertical scroll position of the rendered page.
type Viewport interface {
	ScrollY() int
	ScrollTo(y int, smooth bool)
}

// Frames defers work until the next render has been painted.
type Frames interface {
	AfterRender(fn func())
}

// Catalog is the read side of the catalog store.
type Catalog interface {
	Get(id int64) (products.Product, bool)
	List() []products.Product
	Ready() bool
}

// MemoryLocation is an in-process address bar.
type MemoryLocation struct {
	mu    sync.Mutex
	query url.Values
}

func NewMemoryLocation(q url.Values) *MemoryLocation {
	return &MemoryLocation{query: cloneValues(q)}
}

func (l *MemoryLocation) Query() url.Values {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneValues(l.query)
}

func (l *MemoryLocation) Replace(q url.Values) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query = cloneValues(q)
}

// Set is what the browser does on back/forward: the address changes under us.
func (l *MemoryLocation) Set(q url.Values) {
	l.Replace(q)
}

func cloneValues(q url.Values) url.Values {
	out := url.Values{}
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}

type MemoryScroll struct {
	mu    sync.Mutex
	y     int
	saved bool
}

func (m *MemoryScroll) Save(y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.y, m.saved = y, true
}

func (m *MemoryScroll) Load() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.y, m.saved
}

func (m *MemoryScroll) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.y, m.saved = 0, false
}

// ScrollInstruction is a scroll the client still has to perform.
type ScrollInstruction struct {
	Y      int  `json:"y"`
	Smooth bool `json:"smooth"`
}

// MemoryViewport records the last reported offset and queues scroll
// instructions for the client to carry out.
type MemoryViewport struct {
	mu      sync.Mutex
	y       int
	pending *ScrollInstruction
}

func (v *MemoryViewport) ScrollY() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.y
}

// Report stores the offset the client last observed.
func (v *MemoryViewport) Report(y int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if y < 0 {
		y = 0
	}
	v.y = y
}

func (v *MemoryViewport) ScrollTo(y int, smooth bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.y = y
	v.pending = &ScrollInstruction{Y: y, Smooth: smooth}
}

// TakeScroll returns and forgets the pending scroll instruction.
func (v *MemoryViewport) TakeScroll() (ScrollInstruction, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pending == nil {
		return ScrollInstruction{}, false
	}
	s := *v.pending
	v.pending = nil
	return s, true
}

// QueuedFrames holds deferred callbacks until Flush, which the caller invokes
// once the view has been rendered.
type QueuedFrames struct {
	mu    sync.Mutex
	queue []func()
}

func (f *QueuedFrames) AfterRender(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fn)
}

// Flush runs every queued callback in order. Callbacks queued while flushing
// wait for the next frame.
func (f *QueuedFrames) Flush() int {
	f.mu.Lock()
	queue := f.queue
	f.queue = nil
	f.mu.Unlock()

	for _, fn := range queue {
		fn()
	}
	return len(queue)
}

func (f *QueuedFrames) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}
