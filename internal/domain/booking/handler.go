package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stayinn/stayinn-api/internal/domain/room"
	"github.com/stayinn/stayinn-api/internal/middleware"
	"github.com/stayinn/stayinn-api/internal/pkg/response"
	"github.com/stayinn/stayinn-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates booking handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	// Booking creation reports every client-input failure as 400,
	// including field-level validation.
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(w, http.StatusBadRequest, "BAD_REQUEST", "Validation failed", errs)
		return
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	checkIn, err := ParseDate(req.CheckIn)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	checkOut, err := ParseDate(req.CheckOut)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	b, err := h.svc.Create(r.Context(), userID, roomID, checkIn, checkOut)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, b.ToResponse())
}

// ListMy handles GET /bookings
func (h *Handler) ListMy(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	bookings, err := h.svc.ListForUser(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{"bookings": ToResponses(bookings)})
}

// GetByID handles GET /bookings/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	b, err := h.svc.GetForUser(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, b.ToResponse())
}

// Cancel handles DELETE /bookings/{id}
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	b, err := h.svc.Cancel(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"message": "booking cancelled",
		"booking": b.ToResponse(),
	})
}

// Confirm handles PATCH /bookings/{id}/confirm (admin)
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	b, err := h.svc.Confirm(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, b.ToResponse())
}

// AvailableRooms handles GET /rooms/available?check_in_date=...&check_out_date=...
func (h *Handler) AvailableRooms(w http.ResponseWriter, r *http.Request) {
	inStr := r.URL.Query().Get("check_in_date")
	outStr := r.URL.Query().Get("check_out_date")
	if inStr == "" || outStr == "" {
		response.BadRequest(w, "check_in_date and check_out_date query parameters are required")
		return
	}

	checkIn, err := ParseDate(inStr)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	checkOut, err := ParseDate(outStr)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	rooms, err := h.svc.ListAvailableRooms(r.Context(), checkIn, checkOut)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, AvailableRoomsResponse{
		AvailableRooms: room.ToResponses(rooms),
		CheckIn:        DateOf(checkIn).Format(DateLayout),
		CheckOut:       DateOf(checkOut).Format(DateLayout),
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidRange),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrPastCheckIn),
		errors.Is(err, ErrDateConflict),
		errors.Is(err, ErrAlreadyCancelled):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrRoomUnavailable), errors.Is(err, ErrBookingNotFound):
		response.NotFound(w, err.Error())
	default:
		response.InternalError(w)
	}
}
