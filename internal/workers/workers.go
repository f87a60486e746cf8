package workers

import (
	"time"

	"github.com/rs/zerolog/log"

	"linkguard/internal/platform/repositories"
)

// PruneHistory deletes scan-history rows older than the retention window.
func PruneHistory(repo *repositories.HistoryRepository, retention time.Duration) error {
	cutoff := time.Now().Add(-retention).Unix()

	removed, err := repo.PruneOlderThan(cutoff)
	if err != nil {
		return err
	}

	if removed > 0 {
		log.Info().Int64("removed", removed).Msg("pruned scan history")
	}
	return nil
}
