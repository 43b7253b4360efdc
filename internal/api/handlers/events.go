package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eventroop/server/internal/api/middleware"
	"github.com/eventroop/server/internal/domain"
	"github.com/eventroop/server/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type EventHandler struct {
	authService       *service.AuthService
	eventService      *service.EventService
	membershipService *service.MembershipService
}

func NewEventHandler(authService *service.AuthService, eventService *service.EventService, membershipService *service.MembershipService) *EventHandler {
	return &EventHandler{
		authService:       authService,
		eventService:      eventService,
		membershipService: membershipService,
	}
}

type CreateEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

type JoinEventResponse struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event"`
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.ListAll(r.Context())
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

func (h *EventHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	events, err := h.eventService.ListByOwner(r.Context(), ownerID)
	if err != nil {
		respondInternalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	// The owner's display name is denormalized onto the event; resolve it
	// from the authenticated identity, never from the request body.
	owner, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unknown user")
		return
	}

	event, err := h.eventService.Create(r.Context(), service.CreateEventInput{
		OwnerID:     userID,
		OwnerName:   owner.Name,
		Title:       req.Title,
		Date:        req.Date,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			respondValidationError(w, verr)
			return
		}
		respondInternalError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	var req UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.eventService.Update(r.Context(), eventID, userID, service.UpdateEventInput{
		Title:       req.Title,
		Date:        req.Date,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		h.respondEventError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	if err := h.eventService.Delete(r.Context(), eventID, userID); err != nil {
		h.respondEventError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}

func (h *EventHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	eventID, err := uuid.Parse(chi.URLParam(r, "eventId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	event, err := h.membershipService.Join(r.Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyJoined) {
			respondError(w, http.StatusBadRequest, "You already joined this event!")
			return
		}
		h.respondEventError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, JoinEventResponse{
		Message: "Joined event successfully!",
		Event:   event,
	})
}

func (h *EventHandler) respondEventError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		respondError(w, http.StatusNotFound, "Event not found")
	case errors.Is(err, domain.ErrNotEventOwner):
		respondError(w, http.StatusForbidden, "Only the event owner can do that")
	case errors.As(err, &verr):
		respondValidationError(w, verr)
	default:
		respondInternalError(w, err)
	}
}
