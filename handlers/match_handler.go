package handlers

import (
	"net/http"
	"strconv"

	"github.com/jprn/FootTour/middleware"
	"github.com/jprn/FootTour/models"
	"github.com/jprn/FootTour/repositories"
	"github.com/jprn/FootTour/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	filter, err := parseMatchFilter(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	matches, err := h.matchService.ListByTournament(r.Context(), tournamentID, filter)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"matches": matches})
}

func (h *MatchHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.CurrentUserID(r.Context())
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}
	matchID, err := urlParamInt(r, "matchID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.UpdateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	match, err := h.matchService.UpdateScore(r.Context(), matchID, userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"match": match})
}

func parseMatchFilter(r *http.Request) (repositories.MatchFilter, error) {
	var filter repositories.MatchFilter
	q := r.URL.Query()

	if raw := q.Get("group_id"); raw != "" {
		groupID, err := strconv.Atoi(raw)
		if err != nil || groupID < 1 {
			return filter, errInvalidQueryParam("group_id")
		}
		filter.GroupID = &groupID
	}

	if raw := q.Get("status"); raw != "" {
		status := models.MatchStatus(raw)
		if !status.Valid() {
			return filter, errInvalidQueryParam("status")
		}
		filter.Status = &status
	}

	if raw := q.Get("stage"); raw != "" {
		switch raw {
		case "knockout":
			knockout := true
			filter.Knockout = &knockout
		case "groups":
			knockout := false
			filter.Knockout = &knockout
		default:
			return filter, errInvalidQueryParam("stage")
		}
	}

	return filter, nil
}
