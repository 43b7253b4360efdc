package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/eventroop/server/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	name     string
	password string
	photoURL string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		name:     fmt.Sprintf("Test User %s", suffix),
		password: "testpassword123",
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		Name:         b.name,
		PasswordHash: string(hashedPassword),
		PhotoURL:     b.photoURL,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// LoginResponse matches the API login response
type LoginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}

// BuildAndAuthenticate creates a user via the API and returns the user and token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":    b.email,
		"name":     b.name,
		"password": b.password,
	})

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected register status %d: %s", resp.StatusCode, string(raw))
	}

	loginBody, _ := json.Marshal(map[string]string{
		"email":    b.email,
		"password": b.password,
	})

	loginResp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(loginBody))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer loginResp.Body.Close()

	if loginResp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(loginResp.Body)
		t.Fatalf("unexpected login status %d: %s", loginResp.StatusCode, string(raw))
	}

	var result LoginResponse
	if err := json.NewDecoder(loginResp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	userID, _ := uuid.Parse(result.User.ID)
	user := &domain.User{
		ID:    userID,
		Email: result.User.Email,
		Name:  result.User.Name,
	}

	return user, result.Token
}

// EventBuilder creates test events with a builder pattern
type EventBuilder struct {
	owner       *domain.User
	title       string
	date        time.Time
	location    string
	description string
	attendees   []uuid.UUID
}

// NewEventBuilder creates a new EventBuilder with default values
func NewEventBuilder() *EventBuilder {
	return &EventBuilder{
		title:       fmt.Sprintf("Test Event %s", uuid.New().String()[:8]),
		date:        time.Now().Add(48 * time.Hour).Truncate(time.Second),
		location:    "Community Hall",
		description: "An event created by the test fixtures for integration coverage.",
	}
}

// WithOwner sets the event owner
func (b *EventBuilder) WithOwner(user *domain.User) *EventBuilder {
	b.owner = user
	return b
}

// WithTitle sets the title
func (b *EventBuilder) WithTitle(title string) *EventBuilder {
	b.title = title
	return b
}

// WithDate sets the scheduled date
func (b *EventBuilder) WithDate(date time.Time) *EventBuilder {
	b.date = date
	return b
}

// WithLocation sets the location
func (b *EventBuilder) WithLocation(location string) *EventBuilder {
	b.location = location
	return b
}

// WithDescription sets the description
func (b *EventBuilder) WithDescription(description string) *EventBuilder {
	b.description = description
	return b
}

// WithAttendees pre-populates the attendee list
func (b *EventBuilder) WithAttendees(ids ...uuid.UUID) *EventBuilder {
	b.attendees = ids
	return b
}

// Build creates the event in the database
func (b *EventBuilder) Build(t *testing.T, db *gorm.DB) *domain.Event {
	t.Helper()

	if b.owner == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.owner = user
	}

	event := &domain.Event{
		ID:           uuid.New(),
		Title:        b.title,
		PostedByID:   b.owner.ID,
		PostedByName: b.owner.Name,
		Date:         b.date,
		Location:     b.location,
		Description:  b.description,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := event.SetAttendees(b.attendees); err != nil {
		t.Fatalf("failed to encode attendees: %v", err)
	}

	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	return event
}

// DoRequest performs an HTTP request against the test server with an optional
// bearer token and JSON body.
func DoRequest(t *testing.T, ts *TestServer, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequest(method, ts.APIURL(path), reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	return resp
}
