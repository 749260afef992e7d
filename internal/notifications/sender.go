package notifications

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Sender is how workflows surface transient messages to the operator.
type Sender interface {
	Success(message string)
	Error(message string)
}

// Queue keeps the notifications of one session until the client drains them.
// When full, the oldest notification is dropped.
type Queue struct {
	mu    sync.Mutex
	items []Notification
	max   int
}

func NewQueue(max int) *Queue {
	if max <= 0 {
		max = 20
	}
	return &Queue{max: max}
}

func (q *Queue) Success(message string) { q.push(KindSuccess, message) }

func (q *Queue) Error(message string) { q.push(KindError, message) }

func (q *Queue) push(kind Kind, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	})
	if len(q.items) > q.max {
		q.items = q.items[len(q.items)-q.max:]
	}
}

// Drain returns all pending notifications, oldest first, and empties the queue.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.items
	q.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
