package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eventroop/server/internal/domain"
	"github.com/eventroop/server/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Accepted date layouts: RFC 3339 from API clients, datetime-local and plain
// date from HTML forms. Stored as a timestamp so listings sort chronologically.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

type EventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

type CreateEventInput struct {
	OwnerID     uuid.UUID
	OwnerName   string
	Title       string
	Date        string
	Location    string
	Description string
}

type UpdateEventInput struct {
	Title       *string
	Date        *string
	Location    *string
	Description *string
}

func (s *EventService) Create(ctx context.Context, input CreateEventInput) (*domain.Event, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, &domain.ValidationError{Field: "title", Message: "title is required"}
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, &domain.ValidationError{Field: "location", Message: "location is required"}
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, &domain.ValidationError{Field: "description", Message: "description is required"}
	}
	date, err := parseEventDate(input.Date)
	if err != nil {
		return nil, err
	}

	event := &domain.Event{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(input.Title),
		PostedByID:   input.OwnerID,
		PostedByName: input.OwnerName,
		Date:         date,
		Location:     strings.TrimSpace(input.Location),
		Description:  input.Description,
		AttendeeIDs:  datatypes.JSON([]byte("[]")),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *EventService) Get(ctx context.Context, eventID uuid.UUID) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// Update applies a partial patch to an event. Only the owner may update;
// absent fields are left unchanged.
func (s *EventService) Update(ctx context.Context, eventID, requesterID uuid.UUID, patch UpdateEventInput) (*domain.Event, error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.PostedByID != requesterID {
		return nil, domain.ErrNotEventOwner
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, &domain.ValidationError{Field: "title", Message: "title cannot be empty"}
		}
		event.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Location != nil {
		if strings.TrimSpace(*patch.Location) == "" {
			return nil, &domain.ValidationError{Field: "location", Message: "location cannot be empty"}
		}
		event.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Date != nil {
		date, err := parseEventDate(*patch.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *EventService) Delete(ctx context.Context, eventID, requesterID uuid.UUID) error {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return err
	}
	if event.PostedByID != requesterID {
		return domain.ErrNotEventOwner
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrEventNotFound
		}
		return err
	}
	return nil
}

func (s *EventService) ListAll(ctx context.Context) ([]*domain.Event, error) {
	return s.eventRepo.GetAll(ctx)
}

func (s *EventService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Event, error) {
	return s.eventRepo.GetByOwner(ctx, ownerID)
}

func parseEventDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, &domain.ValidationError{Field: "date", Message: "date is required"}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &domain.ValidationError{Field: "date", Message: "date must be a valid timestamp"}
}
