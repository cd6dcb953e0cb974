package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/alimgiray/gitaudit/internal/models"
)

// EvaluationRepository stores the rows of the latest audit. Each write
// replaces the previous content; no run history is kept.
type EvaluationRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewEvaluationRepository(db *sql.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// ReplaceAll swaps the stored rows for the rows of result in one transaction
func (r *EvaluationRepository) ReplaceAll(result *models.AuditResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM evaluations`); err != nil {
		return fmt.Errorf("failed to clear evaluations: %w", err)
	}

	query := `
		INSERT INTO evaluations (
			author_email, run_id, repository, author_name,
			commits_total, lines_total,
			prod_score, quality_score, collab_score, overall_score,
			row_json, generated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range result.Rows {
		row := &result.Rows[i]
		payload, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to encode row for %s: %w", row.AuthorEmail, err)
		}
		_, err = stmt.Exec(
			row.AuthorEmail, result.RunID, result.Repository, row.AuthorName,
			row.CommitsTotal, row.LinesTotal,
			row.Productivity.Score, row.Quality.Score, row.Collaboration.Score, row.OverallScore,
			string(payload), result.GeneratedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert row for %s: %w", row.AuthorEmail, err)
		}
	}

	return tx.Commit()
}

// GetAll returns the stored rows ordered by author email
func (r *EvaluationRepository) GetAll() ([]*models.EvaluationRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.Query(`SELECT row_json FROM evaluations ORDER BY author_email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluations []*models.EvaluationRow
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var row models.EvaluationRow
		if err := json.Unmarshal([]byte(payload), &row); err != nil {
			return nil, fmt.Errorf("failed to decode stored row: %w", err)
		}
		evaluations = append(evaluations, &row)
	}

	return evaluations, rows.Err()
}

// GetRunID returns the run id of the stored rows, or "" when empty
func (r *EvaluationRepository) GetRunID() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var runID string
	err := r.db.QueryRow(`SELECT run_id FROM evaluations LIMIT 1`).Scan(&runID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return runID, err
}
