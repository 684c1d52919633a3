package sqlite

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/fwojciec/festin"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ festin.RunService = (*RunService)(nil)

// RunService implements festin.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores a new run.
func (s *RunService) CreateRun(ctx context.Context, run *festin.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	seeds, err := json.Marshal(run.Seeds)
	if err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()
	run.FinishedAt = time.Time{}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, seeds, max_recursion, watch, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, string(seeds), run.MaxRecursion, run.Watch, run.StartedAt.Format(time.RFC3339))

	return err
}

// FinishRun stamps the finish time of a run.
func (s *RunService) FinishRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE runs SET finished_at = ? WHERE id = ?",
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return festin.Errorf(festin.ENOTFOUND, "run not found")
	}
	return nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter festin.RunFilter) ([]*festin.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, seeds, max_recursion, watch, started_at, finished_at FROM runs WHERE 1=1")
	whereEqual(&query, &args, "id", filter.ID)
	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*festin.Run
	for rows.Next() {
		var run festin.Run
		var seeds, startedAt, finishedAt string
		if err := rows.Scan(&run.ID, &seeds, &run.MaxRecursion, &run.Watch, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		if run.Seeds, err = decodeList(seeds, "seeds"); err != nil {
			return nil, err
		}
		if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
