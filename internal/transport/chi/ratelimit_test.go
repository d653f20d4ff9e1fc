package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientRateLimiter_Allow(t *testing.T) {
	rl := NewClientRateLimiter(0.001, 2)

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("first two requests must pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("third request must be limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("buckets are per client")
	}
	if rl.Len() != 2 {
		t.Errorf("Len = %d, want 2", rl.Len())
	}
}

func TestClientRateLimiter_PruneKeepsBusyClients(t *testing.T) {
	rl := NewClientRateLimiter(0.001, 5)
	rl.Allow("10.0.0.1")
	rl.bucket("10.0.0.2")

	rl.Prune()

	if rl.Len() != 1 {
		t.Fatalf("Len = %d, want 1", rl.Len())
	}
}

func TestClientRateLimiter_Middleware(t *testing.T) {
	rl := NewClientRateLimiter(0.001, 1)
	h := rl.Middleware()(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/consultations", http.NoBody)
	req.RemoteAddr = "192.0.2.1:5555"

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("first request: got %d", rr.Code)
	}

	req.RemoteAddr = "192.0.2.1:6666"
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second request from same IP: got %d, want 429", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != ErrorResponseCodeRateLimited {
		t.Errorf("code = %q, want %q", errResp.Code, ErrorResponseCodeRateLimited)
	}
}
