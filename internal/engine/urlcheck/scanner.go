package urlcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"linkguard/internal/engine/cache"
	"linkguard/internal/pkg/errors"
	"linkguard/internal/pkg/metrics"
	"linkguard/internal/platform/config"
	"linkguard/internal/platform/models"
)

const safetyKeyPrefix = "safety:"

// Scanner resolves safety verdicts through the external scanning service.
// The service is eventually consistent: a submission is acknowledged first
// and the report becomes available some polls later, so Check runs a bounded
// submit-then-poll cycle. Only completed verdicts are cached; transient
// failures always retry the full cycle on the next call.
type Scanner struct {
	baseURL      string
	apiKey       string
	pollAttempts int
	pollInterval time.Duration

	client *http.Client
	cache  *cache.Cache[models.SafetyResult]
	group  singleflight.Group
}

func NewScanner(cfg config.ScannerConfig, c *cache.Cache[models.SafetyResult]) *Scanner {
	return &Scanner{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		pollAttempts: cfg.PollAttempts,
		pollInterval: cfg.PollInterval,
		client:       &http.Client{Timeout: cfg.Timeout},
		cache:        c,
	}
}

// Check returns the safety verdict for target. Failures are folded into the
// result as status "error"; they never propagate as Go errors so that one bad
// URL cannot abort a batch.
func (s *Scanner) Check(ctx context.Context, target string) models.SafetyResult {
	key := safetyKeyPrefix + target

	if cached, ok := s.cache.Get(key); ok {
		metrics.CacheLookupsTotal.WithLabelValues("safety", "hit").Inc()
		return cached
	}
	metrics.CacheLookupsTotal.WithLabelValues("safety", "miss").Inc()

	// Concurrent callers for the same URL share a single submit/poll cycle.
	v, _, _ := s.group.Do(key, func() (interface{}, error) {
		return s.scan(ctx, target), nil
	})
	return v.(models.SafetyResult)
}

func (s *Scanner) scan(ctx context.Context, target string) models.SafetyResult {
	if err := s.submit(ctx, target); err != nil {
		log.Warn().Err(err).Str("url", target).Msg("scan submission failed")
		return safetyError(err.Error())
	}

	for attempt := 1; attempt <= s.pollAttempts; attempt++ {
		if err := s.wait(ctx); err != nil {
			return safetyError(err.Error())
		}

		report, err := s.fetchReport(ctx, target)
		if err != nil {
			log.Warn().Err(err).Str("url", target).Int("attempt", attempt).Msg("report poll failed")
			return safetyError(err.Error())
		}

		if report.Complete {
			result := verdict(report.Positives, report.Total)
			s.cache.Set(safetyKeyPrefix+target, result)
			log.Debug().
				Str("url", target).
				Str("status", result.Status).
				Int("positives", result.Positives).
				Int("attempt", attempt).
				Msg("scan completed")
			return result
		}
	}

	// Exhausted without a finished report. Deliberately not cached so the
	// next call retries the full cycle.
	return safetyError(errors.ErrScanIncomplete.Error())
}

func (s *Scanner) submit(ctx context.Context, target string) error {
	form := url.Values{"url": {target}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/scan", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("x-apikey", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.ScanSubmissionsTotal.WithLabelValues("error").Inc()
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ScanSubmissionsTotal.WithLabelValues("rejected").Inc()
		return fmt.Errorf("scan submission returned HTTP %d", resp.StatusCode)
	}

	metrics.ScanSubmissionsTotal.WithLabelValues("accepted").Inc()
	return nil
}

type scanReport struct {
	Complete  bool `json:"complete"`
	Positives int  `json:"positives"`
	Total     int  `json:"total"`
}

func (s *Scanner) fetchReport(ctx context.Context, target string) (*scanReport, error) {
	metrics.ScanPollsTotal.Inc()

	reportURL := s.baseURL + "/report?url=" + url.QueryEscape(target)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reportURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-apikey", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("report request returned HTTP %d", resp.StatusCode)
	}

	report := &scanReport{}
	if err := json.NewDecoder(resp.Body).Decode(report); err != nil {
		return nil, err
	}
	return report, nil
}

// wait blocks for one poll interval, or less if ctx expires first.
func (s *Scanner) wait(ctx context.Context) error {
	timer := time.NewTimer(s.pollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func verdict(positives, total int) models.SafetyResult {
	status := models.SafetyStatusSafe
	if positives > 0 {
		status = models.SafetyStatusUnsafe
	}
	return models.SafetyResult{
		Status:     status,
		Positives:  positives,
		TotalScans: total,
	}
}

func safetyError(message string) models.SafetyResult {
	return models.SafetyResult{
		Status:  models.SafetyStatusError,
		Message: message,
	}
}
