// Package feedback records how users react to suggested tasks. Counters are
// kept per task id and incremented atomically by every backend.
package feedback

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Labels accepted by Increment.
const (
	LabelHelpful = "helpful"
	LabelDone    = "done"
)

var (
	// ErrInvalidLabel is returned for labels other than helpful and done.
	ErrInvalidLabel = errors.New("invalid label")
	// ErrMissingTaskID is returned when no task id is given.
	ErrMissingTaskID = errors.New("task_id is required")
)

// Counts holds the feedback counters of one task.
type Counts struct {
	Helpful int64 `json:"helpful"`
	Done    int64 `json:"done"`
}

// Store persists feedback counters.
type Store interface {
	// Increment bumps the counter for label and returns the updated counts.
	Increment(ctx context.Context, taskID, label string) (Counts, error)
	// Get returns the counts of a task; unknown tasks have zero counts.
	Get(ctx context.Context, taskID string) (Counts, error)
	Close() error
}

// ValidateLabel normalises label and checks it against the known labels.
func ValidateLabel(label string) (string, error) {
	l := strings.ToLower(strings.TrimSpace(label))
	switch l {
	case LabelHelpful, LabelDone:
		return l, nil
	}
	return "", ErrInvalidLabel
}

func validate(taskID, label string) (string, string, error) {
	id := strings.TrimSpace(taskID)
	if id == "" {
		return "", "", ErrMissingTaskID
	}
	l, err := ValidateLabel(label)
	if err != nil {
		return "", "", err
	}
	return id, l, nil
}

// MemoryStore keeps counters in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	counts map[string]Counts
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counts: make(map[string]Counts)}
}

func (s *MemoryStore) Increment(ctx context.Context, taskID, label string) (Counts, error) {
	id, l, err := validate(taskID, label)
	if err != nil {
		return Counts{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.counts[id]
	switch l {
	case LabelHelpful:
		c.Helpful++
	case LabelDone:
		c.Done++
	}
	s.counts[id] = c
	return c, nil
}

func (s *MemoryStore) Get(ctx context.Context, taskID string) (Counts, error) {
	id := strings.TrimSpace(taskID)
	if id == "" {
		return Counts{}, ErrMissingTaskID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[id], nil
}

func (s *MemoryStore) Close() error { return nil }
