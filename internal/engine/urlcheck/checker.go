package urlcheck

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"linkguard/internal/pkg/metrics"
	"linkguard/internal/platform/models"
)

// HistoryRecorder persists the trace of a completed check. Failures to record
// are logged and swallowed; history is an audit trail, not part of the verdict.
type HistoryRecorder interface {
	Record(record *models.ScanRecord) error
}

// Checker fans a batch of candidate URLs out across the validator, scanner
// and resolver, and joins the verdicts back in input order.
type Checker struct {
	scanner  *Scanner
	resolver *Resolver
	history  HistoryRecorder
}

// NewChecker wires the orchestrator. history may be nil to disable recording.
func NewChecker(scanner *Scanner, resolver *Resolver, history HistoryRecorder) *Checker {
	return &Checker{
		scanner:  scanner,
		resolver: resolver,
		history:  history,
	}
}

// CheckBatch evaluates every URL concurrently and returns one result per
// input, positionally: slot i always belongs to urls[i] no matter which task
// finishes first. The call returns only once every slot is filled; per-item
// failures land in the slot as status "error" results.
func (c *Checker) CheckBatch(ctx context.Context, urls []string) []models.URLCheckResult {
	start := time.Now()
	results := make([]models.URLCheckResult, len(urls))

	var wg sync.WaitGroup
	for i, raw := range urls {
		wg.Add(1)
		go func(i int, raw string) {
			defer wg.Done()
			results[i] = c.checkOne(ctx, raw)
		}(i, raw)
	}
	wg.Wait()

	metrics.BatchDuration.Observe(time.Since(start).Seconds())
	c.record(results)
	return results
}

func (c *Checker) checkOne(ctx context.Context, raw string) models.URLCheckResult {
	structure := ValidateURL(raw)
	if structure.Status == models.StructureStatusInvalid {
		// Structural failure short-circuits: no network call for this slot.
		result := invalidResult(raw, structure)
		metrics.ChecksTotal.WithLabelValues(structure.Status, result.Safety.Status, result.Redirects.Status).Inc()
		return result
	}

	var (
		safety    models.SafetyResult
		redirects models.RedirectResult
		wg        sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		safety = c.scanner.Check(ctx, raw)
	}()
	go func() {
		defer wg.Done()
		redirects = c.resolver.Resolve(ctx, raw)
	}()
	wg.Wait()

	metrics.ChecksTotal.WithLabelValues(structure.Status, safety.Status, redirects.Status).Inc()
	return models.URLCheckResult{
		URL:       raw,
		Structure: structure,
		Safety:    safety,
		Redirects: redirects,
	}
}

func (c *Checker) record(results []models.URLCheckResult) {
	if c.history == nil {
		return
	}

	now := time.Now().Unix()
	for _, res := range results {
		rec := &models.ScanRecord{
			URL:             res.URL,
			StructureStatus: res.Structure.Status,
			SafetyStatus:    res.Safety.Status,
			Positives:       res.Safety.Positives,
			TotalScans:      res.Safety.TotalScans,
			RedirectStatus:  res.Redirects.Status,
			HopCount:        len(res.Redirects.Chain) - 1,
			CheckedAt:       now,
		}
		if err := c.history.Record(rec); err != nil {
			log.Warn().Err(err).Str("url", res.URL).Msg("failed to record scan history")
		}
	}
}
