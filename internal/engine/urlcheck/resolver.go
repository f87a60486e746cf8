package urlcheck

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"linkguard/internal/engine/cache"
	"linkguard/internal/pkg/metrics"
	"linkguard/internal/platform/config"
	"linkguard/internal/platform/models"
)

const redirectKeyPrefix = "redirect:"

// Resolver follows a URL's redirect chain by hand, one hop at a time, with
// the client's automatic redirect handling disabled so every intermediate
// status code is observable. The final destination of a chain with at least
// one redirect is handed to the Scanner for a safety verdict.
type Resolver struct {
	maxHops int

	client  *http.Client
	scanner *Scanner
	cache   *cache.Cache[models.RedirectResult]
	group   singleflight.Group
}

func NewResolver(cfg config.RedirectsConfig, scanner *Scanner, c *cache.Cache[models.RedirectResult]) *Resolver {
	client := &http.Client{
		Timeout: cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &Resolver{
		maxHops: cfg.MaxHops,
		client:  client,
		scanner: scanner,
		cache:   c,
	}
}

// Resolve traverses target's redirect chain and classifies the outcome.
// Transport and parse failures mid-chain fold into a status "error" result
// carrying whatever chain was collected; those are never cached.
func (r *Resolver) Resolve(ctx context.Context, target string) models.RedirectResult {
	key := redirectKeyPrefix + target

	if cached, ok := r.cache.Get(key); ok {
		metrics.CacheLookupsTotal.WithLabelValues("redirect", "hit").Inc()
		return cached
	}
	metrics.CacheLookupsTotal.WithLabelValues("redirect", "miss").Inc()

	v, _, _ := r.group.Do(key, func() (interface{}, error) {
		return r.follow(ctx, target), nil
	})
	return v.(models.RedirectResult)
}

func (r *Resolver) follow(ctx context.Context, target string) models.RedirectResult {
	current, err := url.Parse(target)
	if err != nil {
		return redirectError([]string{target}, err.Error())
	}

	chain := []string{target}
	codes := []int{}

	code, location, err := r.fetch(ctx, current.String())
	if err != nil {
		return redirectError(chain, err.Error())
	}
	codes = append(codes, code)

	// Hop N+1 is never issued before hop N's response is known. The bound
	// caps redirects followed, not requests: len(chain)-1 <= maxHops always.
	for code >= 300 && code < 400 && location != "" && len(chain) <= r.maxHops {
		next, err := url.Parse(location)
		if err != nil {
			return redirectError(chain, err.Error())
		}
		current = current.ResolveReference(next)
		chain = append(chain, current.String())

		code, location, err = r.fetch(ctx, current.String())
		if err != nil {
			return redirectError(chain, err.Error())
		}
		codes = append(codes, code)
	}

	result := models.RedirectResult{Chain: chain, StatusCodes: codes}

	if len(chain) > 1 {
		final := r.scanner.Check(ctx, chain[len(chain)-1])
		result.FinalSafety = final
		if final.Status == models.SafetyStatusUnsafe && final.Positives > 0 {
			result.Status = models.RedirectStatusSuspicious
		} else {
			result.Status = models.RedirectStatusClean
		}
	} else {
		result.Status = models.RedirectStatusClean
		result.FinalSafety = models.SafetyResult{Status: models.SafetyStatusNoRedirect}
	}

	r.cache.Set(redirectKeyPrefix+target, result)
	log.Debug().
		Str("url", target).
		Str("status", result.Status).
		Int("hops", len(chain)-1).
		Msg("redirect chain resolved")
	return result
}

// fetch issues one GET without following redirects and surfaces the status
// code plus the raw Location header.
func (r *Resolver) fetch(ctx context.Context, target string) (int, string, error) {
	metrics.RedirectHopsTotal.Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	return resp.StatusCode, resp.Header.Get("Location"), nil
}

func redirectError(chain []string, message string) models.RedirectResult {
	return models.RedirectResult{
		Status:      models.RedirectStatusError,
		Chain:       chain,
		StatusCodes: []int{},
		FinalSafety: models.SafetyResult{Status: models.SafetyStatusError},
		Message:     message,
	}
}
