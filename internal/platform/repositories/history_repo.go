package repositories

import (
	"database/sql"

	"github.com/google/uuid"

	"linkguard/internal/platform/models"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Record(rec *models.ScanRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := r.db.Exec(`
		INSERT INTO scan_history (id, url, structure_status, safety_status, positives, total_scans, redirect_status, hop_count, checked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.URL, rec.StructureStatus, rec.SafetyStatus, rec.Positives, rec.TotalScans, rec.RedirectStatus, rec.HopCount, rec.CheckedAt)
	return err
}

func (r *HistoryRepository) ListRecent(limit int) ([]*models.ScanRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, url, structure_status, safety_status, positives, total_scans, redirect_status, hop_count, checked_at
		FROM scan_history ORDER BY checked_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*models.ScanRecord{}
	for rows.Next() {
		rec := &models.ScanRecord{}
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.StructureStatus, &rec.SafetyStatus, &rec.Positives, &rec.TotalScans, &rec.RedirectStatus, &rec.HopCount, &rec.CheckedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *HistoryRepository) GetByID(id string) (*models.ScanRecord, error) {
	rec := &models.ScanRecord{}
	err := r.db.QueryRow(`
		SELECT id, url, structure_status, safety_status, positives, total_scans, redirect_status, hop_count, checked_at
		FROM scan_history WHERE id = ?
	`, id).Scan(&rec.ID, &rec.URL, &rec.StructureStatus, &rec.SafetyStatus, &rec.Positives, &rec.TotalScans, &rec.RedirectStatus, &rec.HopCount, &rec.CheckedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// PruneOlderThan deletes records checked before cutoff (unix seconds) and
// reports how many rows went away.
func (r *HistoryRepository) PruneOlderThan(cutoff int64) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM scan_history WHERE checked_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
