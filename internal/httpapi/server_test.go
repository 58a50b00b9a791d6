package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/store/memory"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	svc := service.NewService(memory.NewStore(time.Second), service.Config{DefaultCurrency: model.USD, ListLimit: 20})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(svc, logger, Options{})
}

type call struct {
	method string
	path   string
	owner  string
	key    string
	body   string
}

func do(t *testing.T, app *fiber.App, c call) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(c.method, c.path, strings.NewReader(c.body))
	if c.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.owner != "" {
		req.Header.Set(HeaderOwnerID, c.owner)
	}
	if c.key != "" {
		req.Header.Set(HeaderIdempotencyKey, c.key)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", c.method, c.path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp, body
}

func createAccount(t *testing.T, app *fiber.App, owner, body string) model.Account {
	t.Helper()

	resp, raw := do(t, app, call{method: http.MethodPost, path: "/v1/accounts", owner: owner, body: body})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create account: status %d, body %s", resp.StatusCode, raw)
	}

	var acc model.Account
	if err := json.Unmarshal(raw, &acc); err != nil {
		t.Fatalf("invalid account json: %v", err)
	}
	return acc
}

func decodeError(t *testing.T, raw []byte) errorResponse {
	t.Helper()

	var e errorResponse
	if err := json.Unmarshal(raw, &e); err != nil {
		t.Fatalf("invalid error json %s: %v", raw, err)
	}
	return e
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp, _ := do(t, app, call{method: http.MethodGet, path: "/health"})
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestMissingOwnerHeader(t *testing.T) {
	app := newTestApp(t)

	resp, raw := do(t, app, call{method: http.MethodGet, path: "/v1/accounts"})
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	if e := decodeError(t, raw); e.Code != "UNAUTHORIZED" {
		t.Errorf("code = %s, want UNAUTHORIZED", e.Code)
	}
}

func TestTransferFlow(t *testing.T) {
	app := newTestApp(t)
	from := createAccount(t, app, "alice", `{"name":"Checking","currency":"USD","initial_balance":100000}`)
	to := createAccount(t, app, "bob", `{"name":"Savings","currency":"USD"}`)

	body := fmt.Sprintf(`{"from_account_id":%q,"to_account_id":%q,"amount":60000,"currency":"USD"}`, from.ID, to.ID)

	resp, raw := do(t, app, call{method: http.MethodPost, path: "/v1/transfers", owner: "alice", key: "t-1", body: body})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("first transfer: status %d, body %s", resp.StatusCode, raw)
	}
	var first model.Transaction
	if err := json.Unmarshal(raw, &first); err != nil {
		t.Fatalf("invalid transaction json: %v", err)
	}
	if first.Status != model.StatusCompleted {
		t.Errorf("status = %s, want COMPLETED", first.Status)
	}

	resp, raw = do(t, app, call{method: http.MethodPost, path: "/v1/transfers", owner: "alice", key: "t-1", body: body})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("replay: status %d, body %s", resp.StatusCode, raw)
	}
	if resp.Header.Get(HeaderIdempotentReplay) != "true" {
		t.Error("replay header missing")
	}
	var replay model.Transaction
	if err := json.Unmarshal(raw, &replay); err != nil {
		t.Fatalf("invalid transaction json: %v", err)
	}
	if replay.ID != first.ID {
		t.Errorf("replay id = %s, want %s", replay.ID, first.ID)
	}

	resp, raw = do(t, app, call{method: http.MethodPost, path: "/v1/transfers", owner: "alice", key: "t-2", body: body})
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("second transfer: status %d, want 422", resp.StatusCode)
	}
	if e := decodeError(t, raw); e.Code != "INSUFFICIENT_FUNDS" {
		t.Errorf("code = %s, want INSUFFICIENT_FUNDS", e.Code)
	}

	resp, raw = do(t, app, call{method: http.MethodGet, path: "/v1/accounts/" + from.ID, owner: "alice"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("get account: status %d", resp.StatusCode)
	}
	var acc model.Account
	if err := json.Unmarshal(raw, &acc); err != nil {
		t.Fatalf("invalid account json: %v", err)
	}
	if acc.Balance != 40000 {
		t.Errorf("balance = %d, want 40000", acc.Balance)
	}

	resp, _ = do(t, app, call{method: http.MethodGet, path: "/v1/transactions/" + first.ID, owner: "bob"})
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("recipient read: status %d, want 200", resp.StatusCode)
	}
	resp, raw = do(t, app, call{method: http.MethodGet, path: "/v1/transactions/" + first.ID, owner: "mallory"})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("stranger read: status %d, want 404", resp.StatusCode)
	}
	if e := decodeError(t, raw); e.Code != "NOT_FOUND" {
		t.Errorf("code = %s, want NOT_FOUND", e.Code)
	}
}

func TestErrorStatuses(t *testing.T) {
	app := newTestApp(t)
	usd := createAccount(t, app, "alice", `{"name":"USD","currency":"USD","initial_balance":500}`)
	eur := createAccount(t, app, "alice", `{"name":"EUR","currency":"EUR"}`)

	tests := []struct {
		name     string
		call     call
		status   int
		wantCode string
	}{
		{
			name:     "malformed body",
			call:     call{method: http.MethodPost, path: "/v1/deposits", owner: "alice", body: `{"amount":`},
			status:   fiber.StatusBadRequest,
			wantCode: "BAD_REQUEST",
		},
		{
			name:     "zero amount",
			call:     call{method: http.MethodPost, path: "/v1/deposits", owner: "alice", body: fmt.Sprintf(`{"account_id":%q,"amount":0}`, usd.ID)},
			status:   fiber.StatusBadRequest,
			wantCode: "BAD_REQUEST",
		},
		{
			name:     "unknown account",
			call:     call{method: http.MethodPost, path: "/v1/withdrawals", owner: "alice", body: `{"account_id":"nope","amount":1}`},
			status:   fiber.StatusNotFound,
			wantCode: "ACCOUNT_NOT_FOUND",
		},
		{
			name:     "foreign account",
			call:     call{method: http.MethodPost, path: "/v1/withdrawals", owner: "bob", body: fmt.Sprintf(`{"account_id":%q,"amount":1}`, usd.ID)},
			status:   fiber.StatusForbidden,
			wantCode: "FORBIDDEN",
		},
		{
			name: "currency mismatch",
			call: call{method: http.MethodPost, path: "/v1/transfers", owner: "alice",
				body: fmt.Sprintf(`{"from_account_id":%q,"to_account_id":%q,"amount":1,"currency":"USD"}`, usd.ID, eur.ID)},
			status:   fiber.StatusUnprocessableEntity,
			wantCode: "CURRENCY_MISMATCH",
		},
		{
			name:     "deactivate funded account",
			call:     call{method: http.MethodDelete, path: "/v1/accounts/" + usd.ID, owner: "alice"},
			status:   fiber.StatusConflict,
			wantCode: "BALANCE_NOT_ZERO",
		},
		{
			name:     "unknown route",
			call:     call{method: http.MethodGet, path: "/v1/nothing", owner: "alice"},
			status:   fiber.StatusNotFound,
			wantCode: "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := do(t, app, tt.call)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (body %s)", resp.StatusCode, tt.status, raw)
			}
			if e := decodeError(t, raw); e.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", e.Code, tt.wantCode)
			}
		})
	}
}

func TestDepositWithdrawAndHistory(t *testing.T) {
	app := newTestApp(t)
	acc := createAccount(t, app, "alice", `{"name":"Wallet","currency":"GBP"}`)

	resp, raw := do(t, app, call{method: http.MethodPost, path: "/v1/deposits", owner: "alice",
		body: fmt.Sprintf(`{"account_id":%q,"amount":900,"currency":"GBP"}`, acc.ID)})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("deposit: status %d, body %s", resp.StatusCode, raw)
	}

	resp, raw = do(t, app, call{method: http.MethodPost, path: "/v1/withdrawals", owner: "alice",
		body: fmt.Sprintf(`{"account_id":%q,"amount":900,"currency":"GBP"}`, acc.ID)})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("withdrawal: status %d, body %s", resp.StatusCode, raw)
	}

	resp, raw = do(t, app, call{method: http.MethodGet, path: "/v1/accounts/" + acc.ID + "/transactions?limit=10", owner: "alice"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("history: status %d", resp.StatusCode)
	}
	var history struct {
		Transactions []model.Transaction `json:"transactions"`
	}
	if err := json.Unmarshal(raw, &history); err != nil {
		t.Fatalf("invalid history json: %v", err)
	}
	if len(history.Transactions) != 2 {
		t.Errorf("history has %d entries, want 2", len(history.Transactions))
	}

	resp, raw = do(t, app, call{method: http.MethodDelete, path: "/v1/accounts/" + acc.ID, owner: "alice"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("deactivate: status %d, body %s", resp.StatusCode, raw)
	}
	var closed model.Account
	if err := json.Unmarshal(raw, &closed); err != nil {
		t.Fatalf("invalid account json: %v", err)
	}
	if closed.Active {
		t.Error("account still active")
	}

	resp, raw = do(t, app, call{method: http.MethodPost, path: "/v1/deposits", owner: "alice",
		body: fmt.Sprintf(`{"account_id":%q,"amount":1,"currency":"GBP"}`, acc.ID)})
	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("deposit into closed account: status %d, want 409", resp.StatusCode)
	}
	if e := decodeError(t, raw); e.Code != "ACCOUNT_INACTIVE" {
		t.Errorf("code = %s, want ACCOUNT_INACTIVE", e.Code)
	}
}
