package service

import (
	"context"
	"errors"

	"github.com/eventroop/server/internal/domain"
	"github.com/eventroop/server/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipService struct {
	eventRepo repository.EventRepository
}

func NewMembershipService(eventRepo repository.EventRepository) *MembershipService {
	return &MembershipService{eventRepo: eventRepo}
}

// Join registers userID as an attendee of the event. The repository performs
// the append and count recompute under a per-event row lock, so a user cannot
// be appended twice and concurrent joins cannot lose updates.
func (s *MembershipService) Join(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, error) {
	event, err := s.eventRepo.AddAttendee(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}
