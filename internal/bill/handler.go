package bill

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/daem0n707/Payman/internal/split"
	"github.com/daem0n707/Payman/pkg/response"
)

// Handler handles HTTP requests for bill operations
type Handler struct {
	service *Service
}

// NewHandler creates a new bill handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for bill endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/trash", h.ListDeleted)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/restore", h.Restore)
	r.Delete("/{id}/purge", h.Purge)
	r.Get("/{id}/split", h.Split)
	r.Get("/{id}/split/policies", h.PolicyOptions)

	return r
}

// Create handles POST /bills
// @Summary      Create a new bill
// @Description  Store a restaurant bill with its items, fees and participants
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        request body CreateBillRequest true "Bill creation request"
// @Success      201 {object} response.APIResponse{data=BillResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /bills [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	bill, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create bill")
		return
	}

	response.JSON(w, http.StatusCreated, bill.ToResponse())
}

// List handles GET /bills
// @Summary      List bills
// @Description  List live bills, optionally filtered by section
// @Tags         bills
// @Produce      json
// @Param        section query string false "Section name filter"
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]BillResponse}
// @Router       /bills [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	section := r.URL.Query().Get("section")

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	bills, total, err := h.service.List(r.Context(), section, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list bills")
		return
	}

	billResponses := make([]*BillResponse, len(bills))
	for i, bill := range bills {
		billResponses[i] = bill.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, billResponses, meta)
}

// ListDeleted handles GET /bills/trash
// @Summary      List recycle bin
// @Description  List soft-deleted bills awaiting restore or purge
// @Tags         bills
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]BillResponse}
// @Router       /bills/trash [get]
func (h *Handler) ListDeleted(w http.ResponseWriter, r *http.Request) {
	bills, err := h.service.ListDeleted(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to list deleted bills")
		return
	}

	billResponses := make([]*BillResponse, len(bills))
	for i, bill := range bills {
		billResponses[i] = bill.ToResponse()
	}

	response.JSON(w, http.StatusOK, billResponses)
}

// GetByID handles GET /bills/{id}
// @Summary      Get bill by ID
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID"
// @Success      200 {object} response.APIResponse{data=BillResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /bills/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	bill, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err, "Failed to get bill")
		return
	}

	response.JSON(w, http.StatusOK, bill.ToResponse())
}

// Update handles PUT /bills/{id}
// @Summary      Update a bill
// @Description  Apply partial changes; a present item list replaces all items
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        id path string true "Bill ID"
// @Param        request body UpdateBillRequest true "Bill update request"
// @Success      200 {object} response.APIResponse{data=BillResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /bills/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	bill, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.writeError(w, err, "Failed to update bill")
		return
	}

	response.JSON(w, http.StatusOK, bill.ToResponse())
}

// Delete handles DELETE /bills/{id}
// @Summary      Delete a bill
// @Description  Move a bill to the recycle bin
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /bills/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err, "Failed to delete bill")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Bill moved to recycle bin"})
}

// Restore handles POST /bills/{id}/restore
// @Summary      Restore a bill
// @Description  Bring a bill back from the recycle bin
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID"
// @Success      200 {object} response.APIResponse{data=BillResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /bills/{id}/restore [post]
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	bill, err := h.service.Restore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err, "Failed to restore bill")
		return
	}

	response.JSON(w, http.StatusOK, bill.ToResponse())
}

// Purge handles DELETE /bills/{id}/purge
// @Summary      Purge a bill
// @Description  Permanently remove a bill from the recycle bin
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /bills/{id}/purge [delete]
func (h *Handler) Purge(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Purge(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err, "Failed to purge bill")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Bill permanently deleted"})
}

// Split handles GET /bills/{id}/split
// @Summary      Split a bill
// @Description  Settle a bill under the requested fee policy (default EQUAL)
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID"
// @Param        policy query string false "Fee policy" Enums(EQUAL, PROPORTIONAL, HYBRID)
// @Success      200 {object} response.APIResponse{data=SplitResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /bills/{id}/split [get]
func (h *Handler) Split(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Split(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("policy"))
	if err != nil {
		h.writeError(w, err, "Failed to split bill")
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// PolicyOptions handles GET /bills/{id}/split/policies
// @Summary      Compare fee policies
// @Description  Get every policy's fee allocation plus the inequality numbers
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID"
// @Success      200 {object} response.APIResponse{data=PolicyOptionsResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /bills/{id}/split/policies [get]
func (h *Handler) PolicyOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.PolicyOptions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err, "Failed to compute policy options")
		return
	}

	response.JSON(w, http.StatusOK, options)
}

// writeError maps service errors onto HTTP responses
func (h *Handler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrBillNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrBillNotDeleted):
		response.Conflict(w, err.Error())
	case errors.Is(err, ErrRestaurantNameRequired),
		errors.Is(err, ErrParticipantsRequired),
		errors.Is(err, ErrPayeeNotParticipating),
		errors.Is(err, ErrUnknownPerson),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidDiscount),
		errors.Is(err, ErrUnknownPolicy),
		errors.Is(err, split.ErrNoParticipants):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
