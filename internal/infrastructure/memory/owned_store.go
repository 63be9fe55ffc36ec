package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	repo "github.com/oksasatya/dream-journal-api/internal/domain/repository"
)

// OwnedStore is a process-local OwnedRepository. It stores copies, so callers
// never share memory with the store.
type OwnedStore[T entity.Owned] struct {
	mu    sync.RWMutex
	items map[string]T
	seq   map[string]int64
	next  int64

	stamp func(v *T, id string, now time.Time)
	touch func(v *T, now time.Time)
	less  func(a, b T) bool
}

// NewOwnedStore builds a store. stamp assigns id and timestamps on create,
// touch refreshes the update timestamp, less orders ListByUser results; a nil
// less lists newest insertions first.
func NewOwnedStore[T entity.Owned](stamp func(*T, string, time.Time), touch func(*T, time.Time), less func(a, b T) bool) *OwnedStore[T] {
	return &OwnedStore[T]{
		items: make(map[string]T),
		seq:   make(map[string]int64),
		stamp: stamp,
		touch: touch,
		less:  less,
	}
}

func (s *OwnedStore[T]) Create(_ context.Context, v *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.stamp(v, id, time.Now().UTC())
	s.items[id] = *v
	s.next++
	s.seq[id] = s.next
	return nil
}

func (s *OwnedStore[T]) FindByID(_ context.Context, id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &v, nil
}

func (s *OwnedStore[T]) ListByUser(_ context.Context, userID string) ([]T, error) {
	return s.filter(func(v T) bool { return v.OwnerID() == userID }), nil
}

func (s *OwnedStore[T]) Update(_ context.Context, v *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := (*v).ResourceID()
	if _, ok := s.items[id]; !ok {
		return repo.ErrNotFound
	}
	s.touch(v, time.Now().UTC())
	s.items[id] = *v
	return nil
}

func (s *OwnedStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.items, id)
	delete(s.seq, id)
	return nil
}

// filter returns matching items in list order.
func (s *OwnedStore[T]) filter(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0)
	for _, v := range s.items {
		if keep(v) {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if s.less != nil {
			return s.less(out[i], out[j])
		}
		return s.seq[out[i].ResourceID()] > s.seq[out[j].ResourceID()]
	})
	return out
}
