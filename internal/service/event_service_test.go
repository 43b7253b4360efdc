package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/eventroop/server/internal/domain"
	"github.com/eventroop/server/internal/repository/postgres"
	"github.com/eventroop/server/internal/service"
	"github.com/eventroop/server/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	eventService := service.NewEventService(repos.Event)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().WithName("Alice Organizer").Build(t, testDB.DB)

	valid := service.CreateEventInput{
		OwnerID:     owner.ID,
		OwnerName:   owner.Name,
		Title:       "Tech Talk",
		Date:        "2026-10-01T18:30:00Z",
		Location:    "Room 5",
		Description: "An evening of short talks about infrastructure.",
	}

	tests := []struct {
		name      string
		mutate    func(in *service.CreateEventInput)
		wantField string
	}{
		{name: "valid input"},
		{
			name:      "missing title",
			mutate:    func(in *service.CreateEventInput) { in.Title = "  " },
			wantField: "title",
		},
		{
			name:      "missing location",
			mutate:    func(in *service.CreateEventInput) { in.Location = "" },
			wantField: "location",
		},
		{
			name:      "missing description",
			mutate:    func(in *service.CreateEventInput) { in.Description = "" },
			wantField: "description",
		},
		{
			name:      "missing date",
			mutate:    func(in *service.CreateEventInput) { in.Date = "" },
			wantField: "date",
		},
		{
			name:      "unparseable date",
			mutate:    func(in *service.CreateEventInput) { in.Date = "next tuesday" },
			wantField: "date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			if tt.mutate != nil {
				tt.mutate(&input)
			}

			event, err := eventService.Create(ctx, input)

			if tt.wantField != "" {
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr.Field)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Tech Talk", event.Title)
			assert.Equal(t, owner.ID, event.PostedByID)
			assert.Equal(t, owner.Name, event.PostedByName)
			assert.Equal(t, 0, event.AttendeeCount)
		})
	}

	t.Run("accepts datetime-local form values", func(t *testing.T) {
		input := valid
		input.Date = "2026-10-01T18:30"

		event, err := eventService.Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 10, 1, 18, 30, 0, 0, time.UTC), event.Date.UTC())
	})
}

func TestEventService_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	eventService := service.NewEventService(repos.Event)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	event := testutil.NewEventBuilder().
		WithOwner(owner).
		WithTitle("Original Title").
		WithLocation("Original Location").
		Build(t, testDB.DB)

	t.Run("owner applies a partial patch", func(t *testing.T) {
		newTitle := "Updated Title"
		updated, err := eventService.Update(ctx, event.ID, owner.ID, service.UpdateEventInput{
			Title: &newTitle,
		})
		require.NoError(t, err)
		assert.Equal(t, "Updated Title", updated.Title)
		// Fields absent from the patch are unchanged
		assert.Equal(t, "Original Location", updated.Location)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		newTitle := "Hijacked"
		_, err := eventService.Update(ctx, event.ID, stranger.ID, service.UpdateEventInput{
			Title: &newTitle,
		})
		assert.ErrorIs(t, err, domain.ErrNotEventOwner)
	})

	t.Run("empty title in patch is rejected", func(t *testing.T) {
		empty := ""
		_, err := eventService.Update(ctx, event.ID, owner.ID, service.UpdateEventInput{
			Title: &empty,
		})
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("unknown event", func(t *testing.T) {
		newTitle := "Whatever"
		_, err := eventService.Update(ctx, uuid.New(), owner.ID, service.UpdateEventInput{
			Title: &newTitle,
		})
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}

func TestEventService_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	eventService := service.NewEventService(repos.Event)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	event := testutil.NewEventBuilder().WithOwner(owner).Build(t, testDB.DB)

	t.Run("non-owner is forbidden and event remains", func(t *testing.T) {
		err := eventService.Delete(ctx, event.ID, stranger.ID)
		assert.ErrorIs(t, err, domain.ErrNotEventOwner)

		_, err = eventService.Get(ctx, event.ID)
		assert.NoError(t, err)
	})

	t.Run("owner deletes", func(t *testing.T) {
		err := eventService.Delete(ctx, event.ID, owner.ID)
		require.NoError(t, err)

		_, err = eventService.Get(ctx, event.ID)
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})

	t.Run("unknown event", func(t *testing.T) {
		err := eventService.Delete(ctx, uuid.New(), owner.ID)
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}

func TestEventService_Listings(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	eventService := service.NewEventService(repos.Event)
	ctx := context.Background()

	alice, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	bob, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	oldest := testutil.NewEventBuilder().WithOwner(alice).WithDate(base).Build(t, testDB.DB)
	middle := testutil.NewEventBuilder().WithOwner(bob).WithDate(base.AddDate(0, 0, 7)).Build(t, testDB.DB)
	newest := testutil.NewEventBuilder().WithOwner(alice).WithDate(base.AddDate(0, 1, 0)).Build(t, testDB.DB)

	t.Run("list all sorts by date descending", func(t *testing.T) {
		events, err := eventService.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, newest.ID, events[0].ID)
		assert.Equal(t, middle.ID, events[1].ID)
		assert.Equal(t, oldest.ID, events[2].ID)
	})

	t.Run("list by owner", func(t *testing.T) {
		events, err := eventService.ListByOwner(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, newest.ID, events[0].ID)
		assert.Equal(t, oldest.ID, events[1].ID)
	})
}
