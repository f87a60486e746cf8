package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 3; i++ {
		if !rl.Allow("client-a", 3) {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
	}

	if rl.Allow("client-a", 3) {
		t.Error("Expected request past the limit to be denied")
	}

	// A different key has its own bucket.
	if !rl.Allow("client-b", 3) {
		t.Error("Expected separate key to be unaffected")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter()

	calls := 0
	handler := RateLimit(rl, 1)(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/check-urls", nil)
	req.RemoteAddr = "10.0.0.1:4321"

	rr := httptest.NewRecorder()
	handler(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected first request to pass, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("Expected second request to be limited, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") != "60" {
		t.Errorf("Expected Retry-After header, got %q", rr.Header().Get("Retry-After"))
	}

	if calls != 1 {
		t.Errorf("Expected handler to run once, ran %d times", calls)
	}
}
