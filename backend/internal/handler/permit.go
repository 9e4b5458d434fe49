package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mesto-decin/parking-permits/shared/api"
	"github.com/mesto-decin/parking-permits/shared/errors"
	"github.com/mesto-decin/parking-permits/shared/middleware/metrics"
	"github.com/mesto-decin/parking-permits/shared/utils"
)

func (h *Handler) CreatePermit(w http.ResponseWriter, r *http.Request) {
	var body api.CreatePermitRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteError(w, err, "Error adding permit")
		return
	}
	if err := h.validator.Check(body); err != nil {
		utils.WriteError(w, err, "Error adding permit")
		return
	}

	id, err := h.permit.Create(r.Context(), body.ToApplication())
	if err != nil {
		utils.WriteError(w, err, "Error adding permit")
		return
	}

	metrics.PermitCreated()
	utils.WriteJSON(w, http.StatusCreated, api.CreatePermitResponse{
		Message: "Permit added successfully",
		ID:      id,
	})
}

func (h *Handler) GetPermit(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteError(w, err, "Error retrieving permit")
		return
	}

	permit, err := h.permit.Get(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err, "Error retrieving permit")
		return
	}

	// A missing permit is not an error: the body is JSON null.
	utils.WriteJSON(w, http.StatusOK, permit)
}

func (h *Handler) ListPermits(w http.ResponseWriter, r *http.Request) {
	carRegistration := r.URL.Query().Get("carRegistration")

	permits, err := h.permit.List(r.Context(), carRegistration)
	if err != nil {
		utils.WriteError(w, err, "Error retrieving permits")
		return
	}

	utils.WriteJSON(w, http.StatusOK, permits)
}

// parseID accepts only the canonical decimal form, so "01", "1.5" and
// "1e3" are rejected even though Atoi or a float parse would take some
// of them.
func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || strconv.Itoa(id) != raw {
		return 0, &errors.ErrorWithStatusCode{
			Message:    "id must be an integer number",
			StatusCode: http.StatusBadRequest,
		}
	}
	return id, nil
}
