package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func authRequest(h http.Handler, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, http.NoBody)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestBearerAuth_Disabled(t *testing.T) {
	for _, keys := range [][]string{nil, {"", "  "}} {
		h := BearerAuthMiddleware(keys)(okHandler())
		if rr := authRequest(h, "/v1/consultations", ""); rr.Code != http.StatusOK {
			t.Errorf("keys %q: got %d, want %d", keys, rr.Code, http.StatusOK)
		}
	}
}

func TestBearerAuth(t *testing.T) {
	h := BearerAuthMiddleware([]string{"key1", " key2 "})(okHandler())

	tests := []struct {
		name   string
		path   string
		header string
		want   int
		msg    string
	}{
		{"missing header", "/v1/consultations", "", http.StatusUnauthorized, "missing authorization header"},
		{"basic scheme", "/v1/consultations", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "authorization header must use Bearer scheme"},
		{"no credential", "/v1/consultations", "Bearer ", http.StatusUnauthorized, "empty bearer token"},
		{"wrong key", "/v1/classifications", "Bearer wrong-key", http.StatusUnauthorized, "invalid api key"},
		{"prefix of a key", "/v1/classifications", "Bearer key", http.StatusUnauthorized, "invalid api key"},
		{"first key", "/v1/consultations", "Bearer key1", http.StatusOK, ""},
		{"trimmed second key", "/v1/remedies/match", "Bearer key2", http.StatusOK, ""},
		{"lowercase scheme", "/v1/consultations", "bearer key1", http.StatusOK, ""},
		{"health is public", "/health", "", http.StatusOK, ""},
		{"metrics is public", "/metrics", "", http.StatusOK, ""},
		{"catalog is public", "/v1/catalog/symptoms", "", http.StatusOK, ""},
		{"usage is private", "/usage", "", http.StatusUnauthorized, "missing authorization header"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := authRequest(h, tc.path, tc.header)
			if rr.Code != tc.want {
				t.Fatalf("got %d, want %d", rr.Code, tc.want)
			}
			if tc.want == http.StatusOK {
				return
			}

			if got := rr.Header().Get("WWW-Authenticate"); got == "" {
				t.Error("expected WWW-Authenticate challenge")
			}
			var errResp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if errResp.Code != ErrorResponseCodeUnauthorized {
				t.Errorf("code = %s, want %s", errResp.Code, ErrorResponseCodeUnauthorized)
			}
			if errResp.Message != tc.msg {
				t.Errorf("message = %q, want %q", errResp.Message, tc.msg)
			}
		})
	}
}

func TestKnownKey(t *testing.T) {
	keys := [][]byte{[]byte("alpha"), []byte("beta")}
	if !knownKey(keys, "beta") {
		t.Error("beta should be accepted")
	}
	if knownKey(keys, "gamma") || knownKey(keys, "") {
		t.Error("unknown token accepted")
	}
}
