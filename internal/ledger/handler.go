package ledger

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daem0n707/Payman/pkg/response"
)

// Handler handles HTTP requests for cross-bill settlements
type Handler struct {
	service *Service
}

// NewHandler creates a new ledger handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Settlements)

	return r
}

// Settlements handles GET /settlements
// @Summary      Cross-bill settlements
// @Description  Settle every live bill and aggregate who owes whom. Pairs are netted to a single debt unless simplified=false.
// @Tags         settlements
// @Produce      json
// @Param        simplified query bool false "Net each pair down to one debt" default(true)
// @Success      200 {object} response.APIResponse{data=SettlementsResponse}
// @Failure      500 {object} response.APIResponse
// @Router       /settlements [get]
func (h *Handler) Settlements(w http.ResponseWriter, r *http.Request) {
	simplified := r.URL.Query().Get("simplified") != "false"

	result, err := h.service.Settlements(r.Context(), simplified)
	if err != nil {
		response.InternalError(w, "Failed to compute settlements")
		return
	}

	response.JSON(w, http.StatusOK, result)
}
