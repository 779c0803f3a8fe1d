package http

import (
	"net/http"
)

func (s *Server) handleListSavings(w http.ResponseWriter, r *http.Request) {
	goals, err := s.backend.ListSavingsGoals(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]savingsGoalJSON, 0, len(goals))
	for _, g := range goals {
		out = append(out, toSavingsGoalJSON(g))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateSavingsGoal(w http.ResponseWriter, r *http.Request) {
	var payload savingsPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := payload.toGoal()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	created, err := s.finance.AddSavingsGoal(r.Context(), g)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards()
	respondJSON(w, http.StatusCreated, toSavingsGoalJSON(created))
}

func (s *Server) handleUpdateSavingsGoal(w http.ResponseWriter, r *http.Request) {
	var patch savingsPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	upd, err := patch.toUpdate()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if err := s.finance.UpdateSavingsGoal(r.Context(), r.PathValue("id"), upd); err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards()
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleTopUpSavingsGoal(w http.ResponseWriter, r *http.Request) {
	var payload topUpPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := moneyField(payload.Amount, payload.AmountCents)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	celebrate, err := s.finance.TopUpSavingsGoal(r.Context(), r.PathValue("id"), amount)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards()
	respondJSON(w, http.StatusOK, map[string]bool{"celebrate": celebrate})
}

func (s *Server) handleDeleteSavingsGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.finance.DeleteSavingsGoal(r.Context(), r.PathValue("id")); err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards()
	respondJSON(w, http.StatusNoContent, nil)
}
