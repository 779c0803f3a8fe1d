package http

import (
	"net/http"
	"strings"

	"extraque/internal/core"
	"extraque/internal/currency"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	var (
		items []core.CategoryItem
		err   error
	)

	if v := strings.TrimSpace(r.URL.Query().Get("polarity")); v != "" {
		p := core.Polarity(v)
		if !p.Valid() {
			respondDomainError(w, core.ErrInvalidPolarity)
			return
		}
		items, err = s.categories.ByPolarity(r.Context(), p)
	} else {
		items, err = s.categories.All(r.Context())
	}
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]categoryJSON, 0, len(items))
	for _, c := range items {
		out = append(out, toCategoryJSON(c))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var payload categoryPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.categories.Add(r.Context(),
		sanitizeInput(payload.Label),
		sanitizeInput(payload.Color),
		core.Polarity(payload.Polarity))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards()
	respondJSON(w, http.StatusCreated, toCategoryJSON(created))
}

func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	var payload renamePayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.categories.Rename(r.Context(), r.PathValue("id"), sanitizeInput(payload.Label)); err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards()
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.categories.Remove(r.Context(), r.PathValue("id")); err != nil {
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboards()
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListCurrencies(w http.ResponseWriter, r *http.Request) {
	out := make([]currencyJSON, 0, len(currency.Currencies))
	for _, c := range currency.Currencies {
		out = append(out, toCurrencyJSON(c))
	}
	respondJSON(w, http.StatusOK, out)
}
