package handler

import (
	"net/http"

	"github.com/mesto-decin/parking-permits/shared/api"
	"github.com/mesto-decin/parking-permits/shared/domain"
	"github.com/mesto-decin/parking-permits/shared/utils"
	"github.com/mesto-decin/parking-permits/shared/zones"
)

func (h *Handler) GetZones(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, api.ZoneListResponse{Zones: h.catalog.Zones()})
}

func (h *Handler) QuotePrice(w http.ResponseWriter, r *http.Request) {
	var body api.PriceQuoteRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteError(w, err, "Error calculating price")
		return
	}
	if err := h.validator.Check(body); err != nil {
		utils.WriteError(w, err, "Error calculating price")
		return
	}

	total, err := h.permit.Quote(body.Zones, domain.Duration(body.Duration), zones.HomeAddress{
		Street:      body.Street,
		City:        body.City,
		HouseNumber: body.HouseNumber,
	})
	if err != nil {
		utils.WriteError(w, err, "Error calculating price")
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.PriceQuoteResponse{TotalPrice: total})
}
