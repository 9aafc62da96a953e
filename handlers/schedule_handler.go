package handlers

import (
	"net/http"

	"github.com/jprn/FootTour/brackets"
	"github.com/jprn/FootTour/middleware"
	"github.com/jprn/FootTour/services"
)

// ScheduleHandler exposes the scheduling engine. Every generation step
// is a propose/commit pair: propose returns a preview without touching
// the database, commit persists it after the organizer confirms.
type ScheduleHandler struct {
	scheduleService  services.ScheduleService
	standingsService services.StandingsService
}

func NewScheduleHandler(
	scheduleService services.ScheduleService,
	standingsService services.StandingsService,
) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService:  scheduleService,
		standingsService: standingsService,
	}
}

func (h *ScheduleHandler) Plan(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	plan, err := h.scheduleService.Plan(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"plan": plan})
}

func (h *ScheduleHandler) RecommendGroups(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	recommendation, err := h.scheduleService.RecommendGroups(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"recommendation": recommendation})
}

func (h *ScheduleHandler) ProposeGroups(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.CurrentUserID(r.Context())
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}
	tournamentID, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input struct {
		GroupCount int `json:"group_count"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	draw, err := h.scheduleService.ProposeGroups(r.Context(), tournamentID, userID, input.GroupCount)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"draw": draw})
}

func (h *ScheduleHandler) CommitGroups(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.CurrentUserID(r.Context())
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}
	tournamentID, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input struct {
		Draw *brackets.GroupDraw `json:"draw"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	if input.Draw == nil || len(input.Draw.Groups) == 0 {
		errorResponse(w, http.StatusBadRequest, "draw is required")
		return
	}

	if err := h.scheduleService.CommitGroups(r.Context(), tournamentID, userID, input.Draw); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ScheduleHandler) GenerateGroupFixtures(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.CurrentUserID(r.Context())
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}
	tournamentID, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	matches, err := h.scheduleService.GenerateGroupFixtures(r.Context(), tournamentID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches})
}

func (h *ScheduleHandler) QualifierOptions(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	options, err := h.scheduleService.QualifierOptions(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"options": options})
}

func (h *ScheduleHandler) ProposeKnockout(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.CurrentUserID(r.Context())
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}
	tournamentID, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input struct {
		QualifiersPerGroup int `json:"qualifiers_per_group"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	proposal, err := h.scheduleService.ProposeKnockout(r.Context(), tournamentID, userID, input.QualifiersPerGroup)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"proposal": proposal})
}

func (h *ScheduleHandler) CommitKnockout(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.CurrentUserID(r.Context())
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}
	tournamentID, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input struct {
		Proposal *brackets.KnockoutProposal `json:"proposal"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	if input.Proposal == nil || len(input.Proposal.Pairings) == 0 {
		errorResponse(w, http.StatusBadRequest, "proposal is required")
		return
	}

	matches, err := h.scheduleService.CommitKnockout(r.Context(), tournamentID, userID, input.Proposal)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches})
}

func (h *ScheduleHandler) ProposeNextStage(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.CurrentUserID(r.Context())
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}
	tournamentID, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	proposal, err := h.scheduleService.ProposeNextStage(r.Context(), tournamentID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"proposal": proposal})
}

func (h *ScheduleHandler) CommitNextStage(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.CurrentUserID(r.Context())
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}
	tournamentID, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input struct {
		Proposal *brackets.StageProposal `json:"proposal"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	if input.Proposal == nil {
		errorResponse(w, http.StatusBadRequest, "proposal is required")
		return
	}

	matches, err := h.scheduleService.CommitNextStage(r.Context(), tournamentID, userID, input.Proposal)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches})
}

func (h *ScheduleHandler) Standings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	tables, err := h.standingsService.TablesByGroup(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"tables": tables})
}

func (h *ScheduleHandler) FinalRanking(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	ranking, err := h.scheduleService.FinalRanking(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"ranking": ranking})
}
