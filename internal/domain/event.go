package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Event struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title         string         `json:"title" gorm:"not null"`
	PostedByID    uuid.UUID      `json:"postedById" gorm:"type:uuid;index;not null"`
	PostedByName  string         `json:"postedByName"`
	Date          time.Time      `json:"date" gorm:"index;not null"`
	Location      string         `json:"location" gorm:"not null"`
	Description   string         `json:"description"`
	AttendeeIDs   datatypes.JSON `json:"attendeeIds" gorm:"type:jsonb;default:'[]'"`
	AttendeeCount int            `json:"attendeeCount" gorm:"not null;default:0"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Attendees decodes the JSONB attendee list into user IDs.
func (e *Event) Attendees() ([]uuid.UUID, error) {
	if len(e.AttendeeIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal(e.AttendeeIDs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetAttendees replaces the attendee list and keeps the count in sync.
func (e *Event) SetAttendees(ids []uuid.UUID) error {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	e.AttendeeIDs = datatypes.JSON(raw)
	e.AttendeeCount = len(ids)
	return nil
}

func (e *Event) HasAttendee(userID uuid.UUID) bool {
	ids, err := e.Attendees()
	if err != nil {
		return false
	}
	for _, id := range ids {
		if id == userID {
			return true
		}
	}
	return false
}
