package photo

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stayinn/stayinn-api/internal/pkg/response"
)

// Handler handles room photo HTTP requests
type Handler struct {
	svc      *Service
	maxBytes int64
}

// NewHandler creates photo handler
func NewHandler(svc *Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

// Upload handles POST /rooms/{id}/photos (admin, multipart field "image")
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		response.BadRequest(w, "Invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "image file is required")
		return
	}
	defer file.Close()

	p, err := h.svc.Upload(r.Context(), roomID, file, header.Size)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, h.svc.ToResponse(p))
}

// ListByRoom handles GET /rooms/{id}/photos
func (h *Handler) ListByRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	photos, err := h.svc.ListByRoom(r.Context(), roomID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, map[string]interface{}{"photos": h.svc.ToResponses(photos)})
}

// Delete handles DELETE /rooms/{id}/photos/{photoID} (admin)
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	photoID, err := uuid.Parse(chi.URLParam(r, "photoID"))
	if err != nil {
		response.BadRequest(w, "Invalid photo ID")
		return
	}

	if err := h.svc.Delete(r.Context(), photoID); err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, map[string]string{"message": "photo deleted"})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidImage), errors.Is(err, ErrImageTooLarge):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrPhotoNotFound):
		response.NotFound(w, err.Error())
	default:
		response.InternalError(w)
	}
}
