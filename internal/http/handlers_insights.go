package http

import (
	"net/http"

	"extraque/internal/insights"
	"extraque/internal/log"
)

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	cur := s.parseCurrency(r)
	refresh := parseRefresh(r)

	snap, _, err := s.finance.LoadSnapshot(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed loading snapshot",
			log.FieldError, err)
		respondDomainError(w, err)
		return
	}

	digest := insights.BuildDigest(snap, cur)
	text := s.insights.Get(r.Context(), digest, refresh)

	respondJSON(w, http.StatusOK, map[string]string{
		"currency": cur.Code,
		"insights": text,
	})
}
