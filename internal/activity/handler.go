package activity

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/daem0n707/Payman/pkg/response"
)

// Handler handles HTTP requests for the activity log
type Handler struct {
	service *Service
}

// NewHandler creates a new activity handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for activity endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Delete("/", h.Clear)

	return r
}

// ActivityResponse represents the response for an activity entry
type ActivityResponse struct {
	ID         int64   `json:"id"`
	Action     string  `json:"action"`
	EntityType *string `json:"entity_type,omitempty"`
	EntityID   *string `json:"entity_id,omitempty"`
	Message    string  `json:"message"`
	CreatedAt  string  `json:"created_at"`
}

func toResponse(a *Activity) *ActivityResponse {
	return &ActivityResponse{
		ID:         a.ID,
		Action:     string(a.Action),
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		Message:    a.Message,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}

// List handles GET /activities
// @Summary      List activity log
// @Description  Get recorded bill and person events, newest first
// @Tags         activities
// @Produce      json
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]ActivityResponse}
// @Failure      500 {object} response.APIResponse
// @Router       /activities [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	activities, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list activities")
		return
	}

	activityResponses := make([]*ActivityResponse, len(activities))
	for i, a := range activities {
		activityResponses[i] = toResponse(a)
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, activityResponses, meta)
}

// Clear handles DELETE /activities
// @Summary      Clear activity log
// @Description  Delete every recorded activity entry
// @Tags         activities
// @Produce      json
// @Success      200 {object} response.APIResponse
// @Failure      500 {object} response.APIResponse
// @Router       /activities [delete]
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		response.InternalError(w, "Failed to clear activities")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Activity log cleared"})
}
