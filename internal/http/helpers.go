package http

import (
	"net/http"
	"strconv"
	"strings"

	"extraque/internal/core"
	"extraque/internal/currency"
)

// parsePeriod reads the period query parameter, defaulting to monthly.
func parsePeriod(r *http.Request) (core.Period, error) {
	v := strings.TrimSpace(r.URL.Query().Get("period"))
	if v == "" {
		return core.PeriodMonthly, nil
	}
	return core.ParsePeriod(v)
}

// parseCurrency reads the currency query parameter, falling back to the
// server default for missing or unknown codes.
func (s *Server) parseCurrency(r *http.Request) currency.Currency {
	v := strings.TrimSpace(r.URL.Query().Get("currency"))
	if v == "" {
		return s.defaultCurrency
	}
	cur, ok := currency.ByCode(v)
	if !ok {
		return s.defaultCurrency
	}
	return cur
}

// parseRefresh reads the refresh query flag.
func parseRefresh(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("refresh"))
	return err == nil && v
}

func formatGeneration(gen int64) string {
	return strconv.FormatInt(gen, 10)
}
