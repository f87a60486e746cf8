package urlcheck

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkguard/internal/engine/cache"
	"linkguard/internal/platform/config"
	"linkguard/internal/platform/models"
)

func newTestResolver(scanner *Scanner) *Resolver {
	cfg := config.RedirectsConfig{
		MaxHops: 3,
		Timeout: 2 * time.Second,
	}
	return NewResolver(cfg, scanner, cache.New[models.RedirectResult](24*time.Hour))
}

func TestResolver_NoRedirect(t *testing.T) {
	scanSvc := &fakeScanService{completeAfter: 1}
	scanSrv := httptest.NewServer(scanSvc.handler())
	defer scanSrv.Close()

	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	r := newTestResolver(newTestScanner(scanSrv.URL))
	result := r.Resolve(context.Background(), target.URL)

	assert.Equal(t, models.RedirectStatusClean, result.Status)
	assert.Equal(t, []string{target.URL}, result.Chain)
	assert.Equal(t, []int{200}, result.StatusCodes)
	assert.Equal(t, models.SafetyStatusNoRedirect, result.FinalSafety.Status)
	assert.Equal(t, 0, scanSvc.submissionCount(), "no redirect means no final-hop safety check")
}

func TestResolver_SuspiciousChain(t *testing.T) {
	scanSvc := &fakeScanService{completeAfter: 1, positives: 3, total: 70}
	scanSrv := httptest.NewServer(scanSvc.handler())
	defer scanSrv.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/a", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/landing", http.StatusFound)
	})
	mux.HandleFunc("/landing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	target := httptest.NewServer(mux)
	defer target.Close()

	r := newTestResolver(newTestScanner(scanSrv.URL))
	result := r.Resolve(context.Background(), target.URL+"/a")

	require.Len(t, result.Chain, 2)
	assert.Equal(t, target.URL+"/landing", result.Chain[1])
	assert.Equal(t, []int{302, 200}, result.StatusCodes)
	assert.Equal(t, models.RedirectStatusSuspicious, result.Status)
	assert.Equal(t, models.SafetyStatusUnsafe, result.FinalSafety.Status)
	assert.Equal(t, 3, result.FinalSafety.Positives)
}

func TestResolver_CleanChain(t *testing.T) {
	scanSvc := &fakeScanService{completeAfter: 1, positives: 0, total: 70}
	scanSrv := httptest.NewServer(scanSvc.handler())
	defer scanSrv.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/go", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/done", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/done", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	target := httptest.NewServer(mux)
	defer target.Close()

	r := newTestResolver(newTestScanner(scanSrv.URL))
	result := r.Resolve(context.Background(), target.URL+"/go")

	assert.Equal(t, models.RedirectStatusClean, result.Status)
	assert.Equal(t, []int{301, 200}, result.StatusCodes)
	assert.Equal(t, models.SafetyStatusSafe, result.FinalSafety.Status)
}

func TestResolver_AbsoluteLocation(t *testing.T) {
	scanSvc := &fakeScanService{completeAfter: 1}
	scanSrv := httptest.NewServer(scanSvc.handler())
	defer scanSrv.Close()

	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer final.Close()

	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", final.URL)
		w.WriteHeader(http.StatusFound)
	}))
	defer origin.Close()

	r := newTestResolver(newTestScanner(scanSrv.URL))
	result := r.Resolve(context.Background(), origin.URL)

	require.Len(t, result.Chain, 2)
	assert.Equal(t, final.URL, result.Chain[1])
}

func TestResolver_HopBound(t *testing.T) {
	scanSvc := &fakeScanService{completeAfter: 1}
	scanSrv := httptest.NewServer(scanSvc.handler())
	defer scanSrv.Close()

	var hops atomic.Int64
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hops.Add(1)
		http.Redirect(w, r, fmt.Sprintf("/hop/%d", n), http.StatusFound)
	}))
	defer target.Close()

	r := newTestResolver(newTestScanner(scanSrv.URL))
	result := r.Resolve(context.Background(), target.URL)

	// 3 redirects followed at most, regardless of how long the live chain is.
	assert.Equal(t, 3, len(result.Chain)-1)
	assert.Len(t, result.StatusCodes, 4)
}

func TestResolver_RedirectWithoutLocation(t *testing.T) {
	scanSvc := &fakeScanService{completeAfter: 1}
	scanSrv := httptest.NewServer(scanSvc.handler())
	defer scanSrv.Close()

	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusFound) // 302 with no Location header
	}))
	defer target.Close()

	r := newTestResolver(newTestScanner(scanSrv.URL))
	result := r.Resolve(context.Background(), target.URL)

	assert.Equal(t, models.RedirectStatusClean, result.Status)
	assert.Len(t, result.Chain, 1)
	assert.Equal(t, models.SafetyStatusNoRedirect, result.FinalSafety.Status)
}

func TestResolver_TransportErrorNotCached(t *testing.T) {
	scanSvc := &fakeScanService{completeAfter: 1}
	scanSrv := httptest.NewServer(scanSvc.handler())
	defer scanSrv.Close()

	target := httptest.NewServer(http.NotFoundHandler())
	target.Close() // unreachable from here on

	r := newTestResolver(newTestScanner(scanSrv.URL))
	result := r.Resolve(context.Background(), target.URL)

	require.Equal(t, models.RedirectStatusError, result.Status)
	assert.Equal(t, []string{target.URL}, result.Chain)
	assert.Empty(t, result.StatusCodes)
	assert.Equal(t, models.SafetyStatusError, result.FinalSafety.Status)
	assert.NotEmpty(t, result.Message)
	assert.Equal(t, 0, r.cache.Len(), "error results must not be cached")
}

func TestResolver_CachedChain(t *testing.T) {
	scanSvc := &fakeScanService{completeAfter: 1}
	scanSrv := httptest.NewServer(scanSvc.handler())
	defer scanSrv.Close()

	var requests atomic.Int64
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	r := newTestResolver(newTestScanner(scanSrv.URL))
	first := r.Resolve(context.Background(), target.URL)
	second := r.Resolve(context.Background(), target.URL)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), requests.Load(), "fresh cache entry must suppress traversal")
}
