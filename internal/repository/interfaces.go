package repository

import (
	"context"

	"github.com/eventroop/server/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	GetAll(ctx context.Context) ([]*domain.Event, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddAttendee(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error)
}

type Repositories struct {
	User  UserRepository
	Event EventRepository
}
