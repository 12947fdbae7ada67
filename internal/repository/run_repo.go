package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"coretemp/internal/models"
)

type RunSQLite struct {
	db *sql.DB
}

func NewRunSQLite(db *sql.DB) *RunSQLite { return &RunSQLite{db: db} }

// SQLite TIMESTAMP text format, used for both inserts and range filters.
const timestampLayout = "2006-01-02 15:04:05"

const (
	insertRunSQL = `
		INSERT INTO fit_runs (id, input, started_at, samples, complete, skipped, channels, outputs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	insertLineSQL = `
		INSERT INTO fit_lines (run_id, channel, seq, kind, x_lo, x_hi, intercept, slope)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectRunsSQL = `SELECT id, input, started_at, samples, complete, skipped, channels, outputs FROM fit_runs`

	selectLinesSQL = `
		SELECT channel, seq, kind, x_lo, x_hi, intercept, slope
		FROM fit_lines WHERE run_id = ? ORDER BY channel ASC, seq ASC
	`
)

func marshalOutputs(outputs []string) (*string, error) {
	if len(outputs) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(outputs)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

func unmarshalOutputs(s sql.NullString) ([]string, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var outputs []string
	if err := json.Unmarshal([]byte(s.String), &outputs); err != nil {
		return nil, err
	}
	return outputs, nil
}

// Append stores run and all of its lines in one transaction. An empty ID
// gets a fresh UUID and a zero StartedAt is set to now. Returns the run ID.
func (r *RunSQLite) Append(ctx context.Context, run models.FitRun) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	outputs, err := marshalOutputs(run.Outputs)
	if err != nil {
		return "", fmt.Errorf("marshal outputs: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin run transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, insertRunSQL,
		run.ID,
		run.Input,
		run.StartedAt.UTC().Format(timestampLayout),
		run.Samples,
		run.Complete,
		run.Skipped,
		run.Channels,
		outputs,
	); err != nil {
		return "", fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	for _, l := range run.Lines {
		if _, err := tx.ExecContext(ctx, insertLineSQL,
			run.ID, l.Channel, l.Seq, l.Kind, l.XLo, l.XHi, l.Intercept, l.Slope,
		); err != nil {
			return "", fmt.Errorf("insert line %d/%d of run %s: %w", l.Channel, l.Seq, run.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run %s: %w", run.ID, err)
	}
	return run.ID, nil
}

// List returns runs started within [from, to] (zero bounds are open),
// oldest first, without their lines.
func (r *RunSQLite) List(ctx context.Context, from, to time.Time) ([]models.FitRun, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "started_at >= ?")
		args = append(args, from.UTC().Format(timestampLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "started_at <= ?")
		args = append(args, to.UTC().Format(timestampLayout))
	}

	q := selectRunsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY started_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.FitRun, 0, 16)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one run with its lines ordered by channel and sequence.
func (r *RunSQLite) Get(ctx context.Context, id string) (models.FitRun, error) {
	run, err := scanRun(r.db.QueryRowContext(ctx, selectRunsSQL+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FitRun{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return models.FitRun{}, err
	}

	rows, err := r.db.QueryContext(ctx, selectLinesSQL, id)
	if err != nil {
		return models.FitRun{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var l models.FitLine
		if err := rows.Scan(&l.Channel, &l.Seq, &l.Kind, &l.XLo, &l.XHi, &l.Intercept, &l.Slope); err != nil {
			return models.FitRun{}, err
		}
		run.Lines = append(run.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return models.FitRun{}, err
	}
	return run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (models.FitRun, error) {
	var (
		run     models.FitRun
		outputs sql.NullString
	)
	if err := row.Scan(
		&run.ID,
		&run.Input,
		&run.StartedAt,
		&run.Samples,
		&run.Complete,
		&run.Skipped,
		&run.Channels,
		&outputs,
	); err != nil {
		return models.FitRun{}, err
	}
	run.StartedAt = run.StartedAt.UTC()

	list, err := unmarshalOutputs(outputs)
	if err != nil {
		return models.FitRun{}, fmt.Errorf("decode outputs of run %s: %w", run.ID, err)
	}
	run.Outputs = list
	return run, nil
}
