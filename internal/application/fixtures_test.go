package application

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	repo "github.com/oksasatya/dream-journal-api/internal/domain/repository"
	"github.com/oksasatya/dream-journal-api/internal/infrastructure/memory"
	"github.com/oksasatya/dream-journal-api/pkg/helpers"
)

// countingRepo counts every call that reaches the store.
type countingRepo[T entity.Owned] struct {
	repo.OwnedRepository[T]
	calls atomic.Int64
}

func (c *countingRepo[T]) Create(ctx context.Context, v *T) error {
	c.calls.Add(1)
	return c.OwnedRepository.Create(ctx, v)
}

func (c *countingRepo[T]) FindByID(ctx context.Context, id string) (*T, error) {
	c.calls.Add(1)
	return c.OwnedRepository.FindByID(ctx, id)
}

func (c *countingRepo[T]) ListByUser(ctx context.Context, userID string) ([]T, error) {
	c.calls.Add(1)
	return c.OwnedRepository.ListByUser(ctx, userID)
}

func (c *countingRepo[T]) Update(ctx context.Context, v *T) error {
	c.calls.Add(1)
	return c.OwnedRepository.Update(ctx, v)
}

func (c *countingRepo[T]) Delete(ctx context.Context, id string) error {
	c.calls.Add(1)
	return c.OwnedRepository.Delete(ctx, id)
}

// failingRepo fails every call with a driver-looking error.
type failingRepo[T entity.Owned] struct{}

var errDriver = errors.New(`pq: relation "stories" does not exist`)

func (failingRepo[T]) Create(context.Context, *T) error                { return errDriver }
func (failingRepo[T]) FindByID(context.Context, string) (*T, error)    { return nil, errDriver }
func (failingRepo[T]) ListByUser(context.Context, string) ([]T, error) { return nil, errDriver }
func (failingRepo[T]) Update(context.Context, *T) error                { return errDriver }
func (failingRepo[T]) Delete(context.Context, string) error            { return errDriver }

// recordingPublisher captures published payloads.
type recordingPublisher struct {
	mu   sync.Mutex
	msgs []any
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, body)
	return p.err
}

func (p *recordingPublisher) all() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]any(nil), p.msgs...)
}

// cheapHasher keeps tests fast; bcrypt itself is covered in pkg/helpers.
var cheapHasher = helpers.NewBcryptHasher(4)

func newUserService(mail helpers.Publisher) (*Service, *memory.UserStore) {
	store := memory.NewUserRepository()
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", 0, 0)
	return NewService(store, cheapHasher, jwt, nil, mail), store
}
