package handlers

import (
	"net/http"

	"github.com/jprn/FootTour/middleware"
	"github.com/jprn/FootTour/models"
	"github.com/jprn/FootTour/services"
)

// BillingHandler fronts the simulated checkout: no payment provider,
// the selected plan is applied directly to the profile.
type BillingHandler struct {
	profileService services.ProfileService
}

func NewBillingHandler(profileService services.ProfileService) *BillingHandler {
	return &BillingHandler{profileService: profileService}
}

func (h *BillingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.CurrentUserID(r.Context())
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	var input struct {
		Plan string `json:"plan"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	profile, err := h.profileService.Checkout(r.Context(), userID, models.Plan(input.Plan))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"profile": profile})
}

func (h *BillingHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.CurrentUserID(r.Context())
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	profile, err := h.profileService.GetByID(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"profile": profile})
}
