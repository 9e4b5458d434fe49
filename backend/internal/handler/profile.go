package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mesto-decin/parking-permits/shared/api"
	"github.com/mesto-decin/parking-permits/shared/domain"
	"github.com/mesto-decin/parking-permits/shared/errors"
	"github.com/mesto-decin/parking-permits/shared/identity"
	"github.com/mesto-decin/parking-permits/shared/utils"
)

const sessionCookie = "session_id"

// sessionID returns the caller's session id, minting a new one (and
// setting the cookie) on the first visit.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Load(r.Context(), h.sessionID(w, r))
	if err != nil {
		utils.WriteError(w, err, "Error retrieving profile")
		return
	}
	if profile == nil {
		profile = &domain.UserProfile{}
	}
	utils.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body api.UpdateProfileRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteError(w, err, "Error updating profile")
		return
	}
	if err := h.validator.Check(body); err != nil {
		utils.WriteError(w, err, "Error updating profile")
		return
	}

	sid := h.sessionID(w, r)
	profile, err := h.profiles.Load(r.Context(), sid)
	if err != nil {
		utils.WriteError(w, err, "Error updating profile")
		return
	}
	if profile == nil {
		profile = &domain.UserProfile{}
	}

	profile.Merge(domain.UserProfile{
		UserID:      body.UserID,
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		Street:      body.Street,
		City:        body.City,
		HouseNumber: body.HouseNumber,
		Email:       body.Email,
		DateOfBirth: body.DateOfBirth,
	})

	if err := h.profiles.Save(r.Context(), sid, *profile); err != nil {
		utils.WriteError(w, err, "Error updating profile")
		return
	}
	utils.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) ClearProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.profiles.Clear(r.Context(), h.sessionID(w, r)); err != nil {
		utils.WriteError(w, err, "Error clearing profile")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportAssertion decodes a base64 XML address assertion and merges the
// extracted address into the stored profile.
func (h *Handler) ImportAssertion(w http.ResponseWriter, r *http.Request) {
	var body api.ImportAssertionRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteError(w, err, "Error importing assertion")
		return
	}
	if err := h.validator.Check(body); err != nil {
		utils.WriteError(w, err, "Error importing assertion")
		return
	}

	var address identity.Address
	var err error
	switch body.Format {
	case "tradresa":
		address, err = identity.ParseResidenceCode(body.Assertion)
	default:
		address, err = identity.ParseAddressAssertion(body.Assertion)
	}
	if err != nil {
		utils.WriteError(w, &errors.ErrorWithStatusCode{
			Message:    "Assertion cannot be decoded",
			StatusCode: http.StatusBadRequest,
		}, "Error importing assertion")
		return
	}

	sid := h.sessionID(w, r)
	profile, err := h.profiles.Load(r.Context(), sid)
	if err != nil {
		utils.WriteError(w, err, "Error importing assertion")
		return
	}
	if profile == nil {
		profile = &domain.UserProfile{}
	}

	profile.Merge(domain.UserProfile{
		City:        address.City,
		Street:      address.Street,
		HouseNumber: address.HouseNumber,
	})

	if err := h.profiles.Save(r.Context(), sid, *profile); err != nil {
		utils.WriteError(w, err, "Error importing assertion")
		return
	}
	utils.WriteJSON(w, http.StatusOK, profile)
}
