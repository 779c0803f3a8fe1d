package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"extraque/internal/auth"
	"extraque/internal/cache"
	"extraque/internal/currency"
	"extraque/internal/insights"
	"extraque/internal/registry"
	"extraque/internal/services"
	"extraque/internal/store/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	backend := memory.New(nil)
	backend.Seed()

	authService := auth.New(backend)
	srv := NewServer(Options{
		Addr:            ":0",
		Backend:         backend,
		Finance:         services.NewFinanceService(backend, nil, authService),
		Categories:      registry.New(backend, nil),
		Auth:            authService,
		Insights:        insights.NewService(insights.StaticAdvisor{}, cache.NewLRUCache[string](10, time.Minute)),
		DefaultCurrency: currency.Base(),
	})
	t.Cleanup(func() {
		srv.rateLimiter.Stop()
		srv.cacheManager.Stop()
	})
	return srv
}

func do(t *testing.T, srv *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.RemoteAddr = "203.0.113.50:12345"
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return out
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := do(t, srv, http.MethodGet, path, nil)
		if rr.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rr.Code)
		}
	}
}

func TestTransactionLifecycle(t *testing.T) {
	srv := newTestServer(t)

	created := decode[transactionJSON](t, do(t, srv, http.MethodPost, "/api/transactions", transactionPayload{
		AmountCents: 1999,
		CategoryID:  "Food",
		Description: "Groceries",
		Polarity:    "expense",
		Date:        "2024-03-10",
	}))
	if created.ID == "" {
		t.Fatal("created transaction should carry an id")
	}

	rr := do(t, srv, http.MethodGet, "/api/transactions", nil)
	list := decode[[]transactionJSON](t, rr)
	if len(list) != 5 { // 4 seeded plus the one just created
		t.Fatalf("len(list) = %d, want 5", len(list))
	}

	desc := "Weekly groceries"
	rr = do(t, srv, http.MethodPatch, "/api/transactions/"+created.ID, transactionPatch{Description: &desc})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("patch status = %d, want 204: %s", rr.Code, rr.Body.String())
	}

	rr = do(t, srv, http.MethodDelete, "/api/transactions/"+created.ID, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rr.Code)
	}
}

func TestCreateTransactionRejectsInvalid(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name    string
		payload transactionPayload
		status  int
	}{
		{"zero amount", transactionPayload{CategoryID: "Food", Description: "x", Polarity: "expense", Date: "2024-03-10"}, http.StatusUnprocessableEntity},
		{"bad polarity", transactionPayload{AmountCents: 100, CategoryID: "Food", Description: "x", Polarity: "sideways", Date: "2024-03-10"}, http.StatusUnprocessableEntity},
		{"bad date", transactionPayload{AmountCents: 100, CategoryID: "Food", Description: "x", Polarity: "expense", Date: "10/03/2024"}, http.StatusUnprocessableEntity},
		{"blank description", transactionPayload{AmountCents: 100, CategoryID: "Food", Polarity: "expense", Date: "2024-03-10"}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, srv, http.MethodPost, "/api/transactions", tt.payload)
			if rr.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rr.Code, tt.status, rr.Body.String())
			}
		})
	}
}

func TestDecimalAmountsAccepted(t *testing.T) {
	srv := newTestServer(t)

	created := decode[transactionJSON](t, do(t, srv, http.MethodPost, "/api/transactions", transactionPayload{
		Amount:      "12,34",
		CategoryID:  "Food",
		Description: "Groceries",
		Polarity:    "expense",
		Date:        "2024-03-10",
	}))
	if created.AmountCents != 1234 {
		t.Errorf("created amount = %d cents, want 1234", created.AmountCents)
	}

	// The decimal field wins over pre-converted cents and rounds half-up
	amount := "0.995"
	rr := do(t, srv, http.MethodPatch, "/api/transactions/"+created.ID, transactionPatch{Amount: &amount})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("patch status = %d, want 204: %s", rr.Code, rr.Body.String())
	}
	list := decode[[]transactionJSON](t, do(t, srv, http.MethodGet, "/api/transactions", nil))
	for _, tx := range list {
		if tx.ID == created.ID && tx.AmountCents != 100 {
			t.Errorf("patched amount = %d cents, want 100", tx.AmountCents)
		}
	}

	for _, bad := range []string{"-5.00", "0", "12.3.4", "abc"} {
		rr := do(t, srv, http.MethodPost, "/api/transactions", transactionPayload{
			Amount:      bad,
			CategoryID:  "Food",
			Description: "x",
			Polarity:    "expense",
			Date:        "2024-03-10",
		})
		if rr.Code != http.StatusUnprocessableEntity {
			t.Errorf("amount %q: status = %d, want 422", bad, rr.Code)
		}
	}
}

func TestMalformedBodyIsBadRequest(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewBufferString("{not json"))
	req.RemoteAddr = "203.0.113.50:12345"
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestBillTogglePaid(t *testing.T) {
	srv := newTestServer(t)

	bills := decode[[]billJSON](t, do(t, srv, http.MethodGet, "/api/bills", nil))
	if len(bills) == 0 {
		t.Fatal("seed should provide bills")
	}
	target := bills[0]

	rr := do(t, srv, http.MethodPost, "/api/bills/"+target.ID+"/toggle-paid", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("toggle status = %d, want 204", rr.Code)
	}

	after := decode[[]billJSON](t, do(t, srv, http.MethodGet, "/api/bills", nil))
	for _, b := range after {
		if b.ID == target.ID && b.Paid == target.Paid {
			t.Error("paid flag should have flipped")
		}
	}
}

func TestDebtBalanceRules(t *testing.T) {
	srv := newTestServer(t)

	debts := decode[[]debtJSON](t, do(t, srv, http.MethodGet, "/api/debts", nil))
	if len(debts) == 0 {
		t.Fatal("seed should provide a debt")
	}
	id := debts[0].ID

	rr := do(t, srv, http.MethodPut, "/api/debts/"+id+"/balance", balancePayload{BalanceCents: -1})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("negative balance status = %d, want 422", rr.Code)
	}

	rr = do(t, srv, http.MethodPut, "/api/debts/"+id+"/balance", balancePayload{BalanceCents: 0})
	if rr.Code != http.StatusNoContent {
		t.Errorf("zero balance status = %d, want 204: %s", rr.Code, rr.Body.String())
	}
}

func TestTopUpCelebratesOnCrossing(t *testing.T) {
	srv := newTestServer(t)

	goals := decode[[]savingsGoalJSON](t, do(t, srv, http.MethodGet, "/api/savings", nil))
	if len(goals) == 0 {
		t.Fatal("seed should provide a savings goal")
	}
	id := goals[0].ID
	remaining := goals[0].TargetAmountCents - goals[0].CurrentAmountCents

	first := decode[map[string]bool](t, do(t, srv, http.MethodPost, "/api/savings/"+id+"/top-up", topUpPayload{AmountCents: remaining - 100}))
	if first["celebrate"] {
		t.Error("short of target should not celebrate")
	}

	second := decode[map[string]bool](t, do(t, srv, http.MethodPost, "/api/savings/"+id+"/top-up", topUpPayload{AmountCents: 100}))
	if !second["celebrate"] {
		t.Error("crossing the target should celebrate")
	}

	third := decode[map[string]bool](t, do(t, srv, http.MethodPost, "/api/savings/"+id+"/top-up", topUpPayload{AmountCents: 100}))
	if third["celebrate"] {
		t.Error("already past target should not celebrate again")
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	srv := newTestServer(t)

	all := decode[[]categoryJSON](t, do(t, srv, http.MethodGet, "/api/categories", nil))
	if len(all) != 13 {
		t.Errorf("len(all) = %d, want 13", len(all))
	}

	income := decode[[]categoryJSON](t, do(t, srv, http.MethodGet, "/api/categories?polarity=income", nil))
	if len(income) != 3 {
		t.Errorf("len(income) = %d, want 3", len(income))
	}

	rr := do(t, srv, http.MethodGet, "/api/categories?polarity=diagonal", nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad polarity status = %d, want 422", rr.Code)
	}

	created := decode[categoryJSON](t, do(t, srv, http.MethodPost, "/api/categories", categoryPayload{
		Label:    "Subscriptions",
		Polarity: "expense",
	}))
	if created.Color == "" {
		t.Error("created category should receive a color")
	}
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, http.MethodGet, "/api/auth/session", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("fresh session status = %d, want 401", rr.Code)
	}

	signup := do(t, srv, http.MethodPost, "/api/auth/signup", credentialsPayload{
		Email:    "ada@example.com",
		Password: "hunter22",
		Name:     "Ada",
	})
	if signup.Code != http.StatusCreated {
		t.Fatalf("signup status = %d: %s", signup.Code, signup.Body.String())
	}

	session := decode[identityJSON](t, do(t, srv, http.MethodGet, "/api/auth/session", nil))
	if session.Email != "ada@example.com" {
		t.Errorf("session email = %q", session.Email)
	}

	if rr := do(t, srv, http.MethodPost, "/api/auth/logout", nil); rr.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", rr.Code)
	}

	login := do(t, srv, http.MethodPost, "/api/auth/login", credentialsPayload{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})
	if login.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", login.Code)
	}

	login = do(t, srv, http.MethodPost, "/api/auth/login", credentialsPayload{
		Email:    "ADA@example.com",
		Password: "hunter22",
	})
	if login.Code != http.StatusOK {
		t.Errorf("login status = %d: %s", login.Code, login.Body.String())
	}
}

func TestDashboard(t *testing.T) {
	srv := newTestServer(t)

	dash := decode[DashboardResponse](t, do(t, srv, http.MethodGet, "/api/dashboard?period=yearly&currency=USD", nil))
	if dash.Period != "yearly" {
		t.Errorf("period = %q", dash.Period)
	}
	if dash.Currency.Code != "USD" {
		t.Errorf("currency = %q", dash.Currency.Code)
	}
	if len(dash.Trend.Labels) == 0 {
		t.Error("trend must never be empty")
	}
	if len(dash.Savings) != 1 {
		t.Errorf("len(savings) = %d, want 1", len(dash.Savings))
	}

	rr := do(t, srv, http.MethodGet, "/api/dashboard?period=sometimes", nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad period status = %d, want 422", rr.Code)
	}

	// Unknown currency falls back to the default rather than failing.
	fallback := decode[DashboardResponse](t, do(t, srv, http.MethodGet, "/api/dashboard?currency=XXX", nil))
	if fallback.Currency.Code != "USD" {
		t.Errorf("fallback currency = %q, want USD", fallback.Currency.Code)
	}
}

func TestDashboardCacheInvalidatedByWrites(t *testing.T) {
	srv := newTestServer(t)

	before := decode[DashboardResponse](t, do(t, srv, http.MethodGet, "/api/dashboard?period=yearly", nil))

	rr := do(t, srv, http.MethodPost, "/api/transactions", transactionPayload{
		AmountCents: 5000,
		CategoryID:  "Food",
		Description: "Dinner out",
		Polarity:    "expense",
		Date:        time.Now().Format("2006-01-02"),
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rr.Code)
	}

	after := decode[DashboardResponse](t, do(t, srv, http.MethodGet, "/api/dashboard?period=yearly", nil))
	if after.Totals.Expenses.Cents != before.Totals.Expenses.Cents+5000 {
		t.Errorf("expenses = %d, want %d", after.Totals.Expenses.Cents, before.Totals.Expenses.Cents+5000)
	}
}

func TestInsightsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := decode[map[string]string](t, do(t, srv, http.MethodGet, "/api/insights?currency=EUR", nil))
	if resp["currency"] != "EUR" {
		t.Errorf("currency = %q", resp["currency"])
	}
	if resp["insights"] != insights.TextNoAdvisor {
		t.Errorf("insights = %q, want static fallback", resp["insights"])
	}
}

func TestSuspiciousRequestRejected(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, http.MethodGet, "/.git/config", nil)
	if rr.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rr.Code)
	}
}
