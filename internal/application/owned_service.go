package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	repo "github.com/oksasatya/dream-journal-api/internal/domain/repository"
)

// OwnedService implements the ownership rule shared by every user-owned resource:
// ids are validated before any store access, and a resource owned by someone
// else is reported exactly like a missing one.
type OwnedService[T entity.Owned] struct {
	Repo   repo.OwnedRepository[T]
	Kind   string // display name, e.g. "Story", "Sleep session"
	Logger *logrus.Logger
}

func NewOwnedService[T entity.Owned](r repo.OwnedRepository[T], kind string, logger *logrus.Logger) *OwnedService[T] {
	return &OwnedService[T]{Repo: r, Kind: kind, Logger: logger}
}

func (s *OwnedService[T]) notFound() *AppError {
	return NotFound(s.Kind + " not found")
}

// ParseID validates the structural shape of id and returns its canonical form.
func (s *OwnedService[T]) ParseID(id string) (string, error) {
	return parseID(id, s.Kind)
}

func parseID(id, kind string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", BadRequest("Invalid " + strings.ToLower(kind) + " ID")
	}
	return u.String(), nil
}

// LoadOwned returns the resource only if requesterID owns it.
func (s *OwnedService[T]) LoadOwned(ctx context.Context, id, requesterID string) (*T, error) {
	id, err := s.ParseID(id)
	if err != nil {
		return nil, err
	}
	v, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, s.notFound()
		}
		return nil, s.internal("load", err)
	}
	if v == nil || (*v).OwnerID() != requesterID {
		return nil, s.notFound()
	}
	return v, nil
}

func (s *OwnedService[T]) Create(ctx context.Context, v *T) (*T, error) {
	if err := s.Repo.Create(ctx, v); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// a referenced row disappeared
			return nil, NotFound("Referenced resource not found")
		}
		return nil, s.internal("create", err)
	}
	return v, nil
}

func (s *OwnedService[T]) List(ctx context.Context, requesterID string) ([]T, error) {
	items, err := s.Repo.ListByUser(ctx, requesterID)
	if err != nil {
		return nil, s.internal("list", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *OwnedService[T]) Get(ctx context.Context, id, requesterID string) (*T, error) {
	return s.LoadOwned(ctx, id, requesterID)
}

// Update applies mutate to the owned resource and persists it. mutate may
// reject the change with an error; nothing is written in that case.
func (s *OwnedService[T]) Update(ctx context.Context, id, requesterID string, mutate func(*T) error) (*T, error) {
	v, err := s.LoadOwned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		if err := mutate(v); err != nil {
			return nil, err
		}
	}
	if err := s.Repo.Update(ctx, v); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, s.notFound()
		}
		return nil, s.internal("update", err)
	}
	return v, nil
}

func (s *OwnedService[T]) Delete(ctx context.Context, id, requesterID string) error {
	v, err := s.LoadOwned(ctx, id, requesterID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, (*v).ResourceID()); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return s.notFound()
		}
		return s.internal("delete", err)
	}
	return nil
}

func (s *OwnedService[T]) internal(op string, err error) *AppError {
	loggerOrDiscard(s.Logger).WithError(err).WithField("resource", s.Kind).Errorf("%s failed", op)
	return Internal("Something went wrong while processing the "+strings.ToLower(s.Kind), err)
}
