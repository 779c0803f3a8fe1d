package http

import (
	"net/http"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := s.backend.ListTransactions(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]transactionJSON, 0, len(txns))
	for _, t := range txns {
		out = append(out, toTransactionJSON(t))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var payload transactionPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := payload.toTransaction()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	created, err := s.finance.AddTransaction(r.Context(), t)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards()
	respondJSON(w, http.StatusCreated, toTransactionJSON(created))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var patch transactionPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	upd, err := patch.toUpdate()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if err := s.finance.UpdateTransaction(r.Context(), r.PathValue("id"), upd); err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards()
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.finance.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards()
	respondJSON(w, http.StatusNoContent, nil)
}
