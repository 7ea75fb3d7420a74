package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-profiler/internal/types"
)

// CreateResume inserts r and fills in its ID and timestamps.
func (db *DB) CreateResume(ctx context.Context, r *types.Resume) error {
	parsed, err := encodeJSON(r.ParsedData)
	if err != nil {
		return err
	}
	health, err := encodeJSON(r.ResumeHealth)
	if err != nil {
		return err
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, file_name, raw_text, parsed_data, resume_health, is_confirmed)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		r.UserID, r.FileName, r.RawText, parsed, health, r.IsConfirmed,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

// GetResume retrieves a résumé owned by userID.
func (db *DB) GetResume(ctx context.Context, userID, id uuid.UUID) (*types.Resume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	r, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// ListResumes returns a user's résumés, newest first.
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]types.Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []types.Resume{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// UpdateResume applies the non-nil fields of upd and returns the updated row,
// or nil when the résumé does not exist for userID.
func (db *DB) UpdateResume(ctx context.Context, userID, id uuid.UUID, upd types.ResumeUpdate) (*types.Resume, error) {
	sets := []string{"updated_at = NOW()"}
	var args []any
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.ParsedData != nil {
		b, err := encodeJSON(upd.ParsedData)
		if err != nil {
			return nil, err
		}
		set("parsed_data", b)
	}
	if upd.ResumeHealth != nil {
		b, err := encodeJSON(upd.ResumeHealth)
		if err != nil {
			return nil, err
		}
		set("resume_health", b)
	}
	if upd.IsConfirmed != nil {
		set("is_confirmed", *upd.IsConfirmed)
	}

	args = append(args, id, userID)
	query := fmt.Sprintf(
		`UPDATE resumes SET %s WHERE id = $%d AND user_id = $%d RETURNING `+resumeColumns,
		strings.Join(sets, ", "), len(args)-1, len(args),
	)

	r, err := scanResume(db.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return r, nil
}

// DeleteResume removes a résumé and reports whether it existed.
func (db *DB) DeleteResume(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanResume(row pgx.Row) (*types.Resume, error) {
	var (
		r              types.Resume
		parsed, health []byte
	)
	if err := row.Scan(
		&r.ID, &r.UserID, &r.FileName, &r.RawText, &parsed, &health, &r.IsConfirmed, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := fillResumeJSON(&r, parsed, health); err != nil {
		return nil, err
	}
	return &r, nil
}
