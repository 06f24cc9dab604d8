package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/protectedpay/ledger/internal/auth"
	"github.com/protectedpay/ledger/internal/ledger"
	"github.com/protectedpay/ledger/internal/metrics"
	"github.com/protectedpay/ledger/internal/payout"
	"github.com/protectedpay/ledger/internal/registry"
	"github.com/protectedpay/ledger/internal/storage/sqlite"
)

// setupTestServer starts an httptest server over a temp SQLite database with
// the full engine/auth wiring.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	sink := payout.Instrument(payout.NewRecordingSink(store), m)

	paymentEngine := ledger.NewPaymentEngine(store, sink)
	potEngine := ledger.NewPotEngine(store, sink, ledger.PotPolicy{})
	names := registry.New(store)
	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	srv := New(paymentEngine, potEngine, names, store, authenticator, jwtManager, m)
	srv.RegisterRoutes(r, reg)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return server
}

// doJSON performs a JSON request and decodes the response body into a map.
func doJSON(t *testing.T, method, url, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.StatusCode, out
}

// signup registers an account for addr and returns its session token.
func signup(t *testing.T, baseURL, addr string) string {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, baseURL+"/auth/register", "", map[string]any{
		"address":  addr,
		"password": "hunter2hunter2",
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %v", addr, status, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("register %s: no token in %v", addr, body)
	}
	return token
}

func TestGroupPaymentFlow(t *testing.T) {
	server := setupTestServer(t)

	creator := signup(t, server.URL, "0xA")
	c1 := signup(t, server.URL, "0xC1")
	c2 := signup(t, server.URL, "0xC2")
	c3 := signup(t, server.URL, "0xC3")

	// Create a 3-way payment of 300.
	status, body := doJSON(t, http.MethodPost, server.URL+"/payments", creator, map[string]any{
		"recipient":        "0xB",
		"total_amount":     "300",
		"num_participants": 3,
		"remarks":          "dinner",
	})
	if status != http.StatusCreated {
		t.Fatalf("createPayment: status %d, body %v", status, body)
	}
	if body["amount_per_person"] != "100" {
		t.Errorf("amount_per_person = %v, want 100", body["amount_per_person"])
	}
	paymentID := int64(body["id"].(float64))
	paymentURL := fmt.Sprintf("%s/payments/%d", server.URL, paymentID)

	// Three exact shares complete the escrow.
	for i, token := range []string{c1, c2, c3} {
		status, body = doJSON(t, http.MethodPost, paymentURL+"/contribute", token, map[string]any{"amount": "100"})
		if status != http.StatusOK {
			t.Fatalf("contribution %d: status %d, body %v", i, status, body)
		}
	}
	if body["status_label"] != "completed" || body["amount_collected"] != "300" {
		t.Errorf("final payment state: %v", body)
	}

	// The recipient's transfer history shows the payout.
	recipient := signup(t, server.URL, "0xB")
	status, body = doJSON(t, http.MethodGet, server.URL+"/transfers", recipient, nil)
	if status != http.StatusOK {
		t.Fatalf("listTransfers: status %d", status)
	}
	transfers := body["transfers"].([]any)
	if len(transfers) != 1 {
		t.Fatalf("transfers = %v, want exactly one", transfers)
	}
	payoutRecord := transfers[0].(map[string]any)
	if payoutRecord["amount"] != "300" {
		t.Errorf("payout amount = %v, want 300", payoutRecord["amount"])
	}

	// Terminal payments accept no more contributions.
	status, _ = doJSON(t, http.MethodPost, paymentURL+"/contribute", c1, map[string]any{"amount": "100"})
	if status != http.StatusConflict {
		t.Errorf("contribution after completion: status %d, want 409", status)
	}
}

func TestCreatePaymentValidation(t *testing.T) {
	server := setupTestServer(t)
	creator := signup(t, server.URL, "0xA")

	t.Run("indivisible total", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, server.URL+"/payments", creator, map[string]any{
			"recipient":        "0xB",
			"total_amount":     "100",
			"num_participants": 3,
		})
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
	})

	t.Run("negative amount string", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, server.URL+"/payments", creator, map[string]any{
			"recipient":        "0xB",
			"total_amount":     "-50",
			"num_participants": 1,
		})
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
	})

	t.Run("no token", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, server.URL+"/payments", "", map[string]any{
			"recipient":        "0xB",
			"total_amount":     "100",
			"num_participants": 1,
		})
		if status != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", status)
		}
	})
}

func TestRefundFlow(t *testing.T) {
	server := setupTestServer(t)
	creator := signup(t, server.URL, "0xA")
	c1 := signup(t, server.URL, "0xC1")

	status, body := doJSON(t, http.MethodPost, server.URL+"/payments", creator, map[string]any{
		"recipient":        "0xB",
		"total_amount":     "200",
		"num_participants": 2,
	})
	if status != http.StatusCreated {
		t.Fatalf("createPayment: status %d", status)
	}
	paymentURL := fmt.Sprintf("%s/payments/%d", server.URL, int64(body["id"].(float64)))

	if status, _ = doJSON(t, http.MethodPost, paymentURL+"/contribute", c1, map[string]any{"amount": "100"}); status != http.StatusOK {
		t.Fatalf("contribute: status %d", status)
	}

	t.Run("non-creator rejected", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, paymentURL+"/refund", c1, nil)
		if status != http.StatusForbidden {
			t.Errorf("status = %d, want 403", status)
		}
	})

	t.Run("creator refunds", func(t *testing.T) {
		status, body := doJSON(t, http.MethodPost, paymentURL+"/refund", creator, nil)
		if status != http.StatusOK {
			t.Fatalf("refund: status %d, body %v", status, body)
		}
		if body["status_label"] != "refunded" {
			t.Errorf("status_label = %v, want refunded", body["status_label"])
		}
	})

	t.Run("repeat refund conflicts", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, paymentURL+"/refund", creator, nil)
		if status != http.StatusConflict {
			t.Errorf("status = %d, want 409", status)
		}
	})
}

func TestSavingsPotFlow(t *testing.T) {
	server := setupTestServer(t)
	owner := signup(t, server.URL, "0xA")

	status, body := doJSON(t, http.MethodPost, server.URL+"/pots", owner, map[string]any{
		"name":          "vacation",
		"target_amount": "500",
	})
	if status != http.StatusCreated {
		t.Fatalf("createPot: status %d, body %v", status, body)
	}
	potURL := fmt.Sprintf("%s/pots/%d", server.URL, int64(body["id"].(float64)))

	for _, want := range []string{"200", "400"} {
		status, body = doJSON(t, http.MethodPost, potURL+"/contribute", owner, map[string]any{"amount": "200"})
		if status != http.StatusOK || body["current_amount"] != want {
			t.Fatalf("contribute: status %d, current %v, want %s", status, body["current_amount"], want)
		}
	}

	status, body = doJSON(t, http.MethodPost, potURL+"/break", owner, nil)
	if status != http.StatusOK {
		t.Fatalf("breakPot: status %d, body %v", status, body)
	}
	if body["status_label"] != "broken" || body["current_amount"] != "0" {
		t.Errorf("after break: %v", body)
	}

	status, _ = doJSON(t, http.MethodPost, potURL+"/contribute", owner, map[string]any{"amount": "100"})
	if status != http.StatusConflict {
		t.Errorf("contribution after break: status %d, want 409", status)
	}
}

func TestUsernameFlow(t *testing.T) {
	server := setupTestServer(t)
	alice := signup(t, server.URL, "0x1")
	bob := signup(t, server.URL, "0x2")

	status, _ := doJSON(t, http.MethodPost, server.URL+"/usernames", alice, map[string]any{"username": "alice"})
	if status != http.StatusCreated {
		t.Fatalf("registerUsername: status %d", status)
	}

	t.Run("duplicate name conflicts", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, server.URL+"/usernames", bob, map[string]any{"username": "alice"})
		if status != http.StatusConflict {
			t.Errorf("status = %d, want 409", status)
		}
	})

	t.Run("rename conflicts", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, server.URL+"/usernames", alice, map[string]any{"username": "alice2"})
		if status != http.StatusConflict {
			t.Errorf("status = %d, want 409", status)
		}
	})

	t.Run("resolve", func(t *testing.T) {
		status, body := doJSON(t, http.MethodGet, server.URL+"/usernames/alice", "", nil)
		if status != http.StatusOK || body["address"] != "0x1" {
			t.Errorf("resolve: status %d, body %v", status, body)
		}
	})

	t.Run("reverse resolve", func(t *testing.T) {
		status, body := doJSON(t, http.MethodGet, server.URL+"/addresses/0x1/username", "", nil)
		if status != http.StatusOK || body["username"] != "alice" {
			t.Errorf("reverse resolve: status %d, body %v", status, body)
		}
	})

	t.Run("payment to a username resolves the address", func(t *testing.T) {
		status, body := doJSON(t, http.MethodPost, server.URL+"/payments", bob, map[string]any{
			"recipient":        "alice",
			"total_amount":     "100",
			"num_participants": 1,
		})
		if status != http.StatusCreated {
			t.Fatalf("createPayment: status %d", status)
		}
		if body["recipient"] != "0x1" {
			t.Errorf("recipient = %v, want resolved address 0x1", body["recipient"])
		}
	})
}

func TestLogin(t *testing.T) {
	server := setupTestServer(t)
	signup(t, server.URL, "0xA")

	t.Run("valid credentials", func(t *testing.T) {
		status, body := doJSON(t, http.MethodPost, server.URL+"/auth/login", "", map[string]any{
			"address":  "0xA",
			"password": "hunter2hunter2",
		})
		if status != http.StatusOK || body["token"] == "" {
			t.Errorf("login: status %d, body %v", status, body)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, server.URL+"/auth/login", "", map[string]any{
			"address":  "0xA",
			"password": "nope-nope-nope",
		})
		if status != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", status)
		}
	})
}
