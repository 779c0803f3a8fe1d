package http

import (
	"net/http"

	"extraque/internal/core"
)

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := s.backend.ListDebts(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]debtJSON, 0, len(debts))
	for _, d := range debts {
		out = append(out, toDebtJSON(d))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var payload debtPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := payload.toDebt()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	created, err := s.finance.AddDebt(r.Context(), d)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards()
	respondJSON(w, http.StatusCreated, toDebtJSON(created))
}

func (s *Server) handleUpdateDebtBalance(w http.ResponseWriter, r *http.Request) {
	var payload balancePayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	balance := core.Money{Cents: payload.BalanceCents}
	if err := s.finance.UpdateDebtBalance(r.Context(), r.PathValue("id"), balance); err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards()
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	if err := s.finance.DeleteDebt(r.Context(), r.PathValue("id")); err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards()
	respondJSON(w, http.StatusNoContent, nil)
}
