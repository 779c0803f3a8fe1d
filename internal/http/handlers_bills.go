package http

import (
	"net/http"
)

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.backend.ListBills(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]billJSON, 0, len(bills))
	for _, b := range bills {
		out = append(out, toBillJSON(b))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var payload billPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := payload.toBill()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	created, err := s.finance.AddBill(r.Context(), b)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards()
	respondJSON(w, http.StatusCreated, toBillJSON(created))
}

func (s *Server) handleToggleBillPaid(w http.ResponseWriter, r *http.Request) {
	if err := s.finance.ToggleBillPaid(r.Context(), r.PathValue("id")); err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards()
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	if err := s.finance.DeleteBill(r.Context(), r.PathValue("id")); err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards()
	respondJSON(w, http.StatusNoContent, nil)
}
