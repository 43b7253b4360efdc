package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/eventroop/server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// EventResponse mirrors the API event payload
type EventResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	PostedByID    string   `json:"postedById"`
	PostedByName  string   `json:"postedByName"`
	Date          string   `json:"date"`
	Location      string   `json:"location"`
	Description   string   `json:"description"`
	AttendeeIDs   []string `json:"attendeeIds"`
	AttendeeCount int      `json:"attendeeCount"`
}

func TestEventHandler_Authentication(t *testing.T) {
	ts := testutil.NewTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/events"},
		{http.MethodPost, "/events"},
		{http.MethodGet, "/events/my-events/some-id"},
		{http.MethodPut, "/events/some-id"},
		{http.MethodDelete, "/events/some-id"},
		{http.MethodPost, "/events/join-event/some-id"},
	}

	for _, p := range paths {
		t.Run(fmt.Sprintf("%s %s rejects without token", p.method, p.path), func(t *testing.T) {
			resp := testutil.DoRequest(t, ts, p.method, p.path, "", nil)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
		})
	}
}

func TestEventHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().
		WithName("Alice Organizer").
		BuildAndAuthenticate(t, ts)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
	}{
		{
			name: "successful creation",
			request: map[string]string{
				"title":       "Tech Talk",
				"date":        "2026-10-01T18:30:00Z",
				"location":    "Room 5",
				"description": "Short talks about building reliable services.",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing title",
			request: map[string]string{
				"date":        "2026-10-01T18:30:00Z",
				"location":    "Room 5",
				"description": "Short talks about building reliable services.",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad date",
			request: map[string]string{
				"title":       "Tech Talk",
				"date":        "someday",
				"location":    "Room 5",
				"description": "Short talks about building reliable services.",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.DoRequest(t, ts, http.MethodPost, "/events", token, tt.request)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				var event EventResponse
				testutil.AssertJSONResponse(t, resp, &event)
				assert.Equal(t, "Tech Talk", event.Title)
				assert.Equal(t, "Alice Organizer", event.PostedByName)
				assert.Equal(t, 0, event.AttendeeCount)
				assert.Empty(t, event.AttendeeIDs)
			}
		})
	}
}

func TestEventHandler_Ownership(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, strangerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	event := testutil.NewEventBuilder().
		WithOwner(owner).
		WithTitle("Guarded Event").
		Build(t, ts.DB.DB)

	t.Run("update by non-owner is forbidden", func(t *testing.T) {
		resp := testutil.DoRequest(t, ts, http.MethodPut, "/events/"+event.ID.String(), strangerToken,
			map[string]string{"title": "Hijacked"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})

	t.Run("update by owner succeeds", func(t *testing.T) {
		resp := testutil.DoRequest(t, ts, http.MethodPut, "/events/"+event.ID.String(), ownerToken,
			map[string]string{"title": "Renamed Event"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var updated EventResponse
		testutil.AssertJSONResponse(t, resp, &updated)
		assert.Equal(t, "Renamed Event", updated.Title)
		// Unpatched fields survive
		assert.Equal(t, event.Location, updated.Location)
	})

	t.Run("delete by non-owner is rejected and event remains", func(t *testing.T) {
		resp := testutil.DoRequest(t, ts, http.MethodDelete, "/events/"+event.ID.String(), strangerToken, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusForbidden)

		listResp := testutil.DoRequest(t, ts, http.MethodGet, "/events", ownerToken, nil)
		defer listResp.Body.Close()

		var events []EventResponse
		testutil.AssertJSONResponse(t, listResp, &events)
		require.Len(t, events, 1)
	})

	t.Run("delete by owner removes the event", func(t *testing.T) {
		resp := testutil.DoRequest(t, ts, http.MethodDelete, "/events/"+event.ID.String(), ownerToken, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		listResp := testutil.DoRequest(t, ts, http.MethodGet, "/events", ownerToken, nil)
		defer listResp.Body.Close()

		var events []EventResponse
		testutil.AssertJSONResponse(t, listResp, &events)
		assert.Empty(t, events)
	})

	t.Run("delete of unknown event is 404", func(t *testing.T) {
		resp := testutil.DoRequest(t, ts, http.MethodDelete, "/events/"+event.ID.String(), ownerToken, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})
}

func TestEventHandler_MyEvents(t *testing.T) {
	ts := testutil.NewTestServer(t)

	alice, aliceToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	bob, _ := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	testutil.NewEventBuilder().WithOwner(alice).WithTitle("Alice One").Build(t, ts.DB.DB)
	testutil.NewEventBuilder().WithOwner(alice).WithTitle("Alice Two").Build(t, ts.DB.DB)
	testutil.NewEventBuilder().WithOwner(bob).WithTitle("Bob One").Build(t, ts.DB.DB)

	resp := testutil.DoRequest(t, ts, http.MethodGet, "/events/my-events/"+alice.ID.String(), aliceToken, nil)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var events []EventResponse
	testutil.AssertJSONResponse(t, resp, &events)
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, alice.ID.String(), e.PostedByID)
	}
}

// Full flow: register and log in two users, create an event, browse it,
// join it once, and get rejected on the second join.
func TestEventFlow_RegisterCreateJoin(t *testing.T) {
	ts := testutil.NewTestServer(t)

	userA, tokenA := testutil.NewUserBuilder().
		WithName("Alice Organizer").
		BuildAndAuthenticate(t, ts)

	createResp := testutil.DoRequest(t, ts, http.MethodPost, "/events", tokenA, map[string]string{
		"title":       "Tech Talk",
		"date":        time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		"location":    "Room 5",
		"description": "An in-depth session on event-driven architectures.",
	})
	defer createResp.Body.Close()
	testutil.AssertStatusCode(t, createResp, http.StatusCreated)

	var created EventResponse
	testutil.AssertJSONResponse(t, createResp, &created)
	assert.Equal(t, userA.ID.String(), created.PostedByID)

	// Browsing includes the new event with a zero attendee count
	listResp := testutil.DoRequest(t, ts, http.MethodGet, "/events", tokenA, nil)
	defer listResp.Body.Close()
	testutil.AssertStatusCode(t, listResp, http.StatusOK)

	var events []EventResponse
	testutil.AssertJSONResponse(t, listResp, &events)
	require.Len(t, events, 1)
	assert.Equal(t, "Tech Talk", events[0].Title)
	assert.Equal(t, 0, events[0].AttendeeCount)

	// A second user joins
	userB, tokenB := testutil.NewUserBuilder().
		WithName("Bob Attendee").
		BuildAndAuthenticate(t, ts)

	joinResp := testutil.DoRequest(t, ts, http.MethodPost, "/events/join-event/"+created.ID, tokenB, nil)
	defer joinResp.Body.Close()
	testutil.AssertStatusCode(t, joinResp, http.StatusOK)

	var joined struct {
		Message string        `json:"message"`
		Event   EventResponse `json:"event"`
	}
	testutil.AssertJSONResponse(t, joinResp, &joined)
	assert.Equal(t, "Joined event successfully!", joined.Message)
	assert.Equal(t, 1, joined.Event.AttendeeCount)
	assert.Contains(t, joined.Event.AttendeeIDs, userB.ID.String())

	// Joining again is rejected
	rejoinResp := testutil.DoRequest(t, ts, http.MethodPost, "/events/join-event/"+created.ID, tokenB, nil)
	defer rejoinResp.Body.Close()
	testutil.AssertErrorResponse(t, rejoinResp, http.StatusBadRequest, "already joined")
}
