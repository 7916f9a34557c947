package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func callWithKey(t *testing.T, h http.Handler, header, key string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	if key != "" {
		req.Header.Set(header, key)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestAPIKeyMiddleware_ModeNone_PassesThrough(t *testing.T) {
	h := APIKeyMiddleware("none", "x-api-key", "secret", okHandler())
	// No key in request — should still pass because mode != "apikey".
	if rr := callWithKey(t, h, "x-api-key", ""); rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
}

func TestAPIKeyMiddleware_EmptyKey_PassesThrough(t *testing.T) {
	// key="" means auth is not configured → allow all.
	h := APIKeyMiddleware("apikey", "x-api-key", "", okHandler())
	if rr := callWithKey(t, h, "x-api-key", ""); rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
}

func TestAPIKeyMiddleware_CorrectKey_Passes(t *testing.T) {
	h := APIKeyMiddleware("apikey", "x-api-key", "supersecret", okHandler())
	if rr := callWithKey(t, h, "x-api-key", "supersecret"); rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
}

func TestAPIKeyMiddleware_WrongKey_Rejected(t *testing.T) {
	h := APIKeyMiddleware("apikey", "x-api-key", "supersecret", okHandler())
	rr := callWithKey(t, h, "x-api-key", "wrong")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}
}

func TestAPIKeyMiddleware_MissingKey_Rejected(t *testing.T) {
	h := APIKeyMiddleware("apikey", "x-api-key", "supersecret", okHandler())
	if rr := callWithKey(t, h, "x-api-key", ""); rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}
