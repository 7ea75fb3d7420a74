package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-profiler/internal/types"
	_ "modernc.org/sqlite"
)

//go:embed migrations/sqlite.sql
var sqliteSchema string

// timeLayout is the text encoding of timestamps; it sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// LiteDB is the single-file SQLite store used by the CLI and local servers.
type LiteDB struct {
	db  *sql.DB
	now func() time.Time
}

// OpenLite opens (or creates) the SQLite database at path.
func OpenLite(ctx context.Context, path string) (*LiteDB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	conn.SetMaxOpenConns(1) // SQLite: single writer

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return &LiteDB{db: conn, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Migrate creates the tables and indexes if they do not exist.
func (l *LiteDB) Migrate(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (l *LiteDB) Ping(ctx context.Context) error {
	return l.db.PingContext(ctx)
}

// Close closes the database handle.
func (l *LiteDB) Close() {
	_ = l.db.Close()
}

func (l *LiteDB) timestamp() string {
	return l.now().UTC().Format(timeLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Parse(time.RFC3339Nano, s)
	}
	return t, nil
}

// CreateUser inserts a user without a password and returns its ID.
func (l *LiteDB) CreateUser(ctx context.Context, name, email, phone string) (uuid.UUID, error) {
	id := uuid.New()
	ts := l.timestamp()
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, phone, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id.String(), name, email, phone, ts, ts,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID
func (l *LiteDB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return l.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id.String())
}

// GetUserByEmail retrieves a user by email address
func (l *LiteDB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	if email == "" {
		return nil, nil
	}
	return l.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (l *LiteDB) getUser(ctx context.Context, query string, arg any) (*User, error) {
	var (
		u                User
		id               string
		created, updated string
	)
	err := l.db.QueryRowContext(ctx, query, arg).Scan(
		&id, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.PasswordSet, &created, &updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("failed to parse user id: %w", err)
	}
	if u.CreatedAt, err = parseTimestamp(created); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if u.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return &u, nil
}

// CheckEmailExists reports whether an account uses email.
func (l *LiteDB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := l.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// UpdatePassword stores a new password hash and marks the password as set.
func (l *LiteDB) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res, err := l.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, password_set = 1, updated_at = ? WHERE id = ?`,
		passwordHash, l.timestamp(), id.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}

// DeleteUser removes a user and their résumés.
func (l *LiteDB) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM resumes WHERE user_id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete user resumes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return tx.Commit()
}

// CreateResume inserts r and fills in its ID and timestamps.
func (l *LiteDB) CreateResume(ctx context.Context, r *types.Resume) error {
	parsed, err := encodeJSON(r.ParsedData)
	if err != nil {
		return err
	}
	health, err := encodeJSON(r.ResumeHealth)
	if err != nil {
		return err
	}

	id := uuid.New()
	now := l.now().UTC()
	ts := now.Format(timeLayout)
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO resumes (id, user_id, file_name, raw_text, parsed_data, resume_health, is_confirmed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), r.UserID.String(), r.FileName, r.RawText, nullableText(parsed), nullableText(health), r.IsConfirmed, ts, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}

	r.ID = id
	r.CreatedAt, _ = parseTimestamp(ts)
	r.UpdatedAt = r.CreatedAt
	return nil
}

// GetResume retrieves a résumé owned by userID.
func (l *LiteDB) GetResume(ctx context.Context, userID, id uuid.UUID) (*types.Resume, error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = ? AND user_id = ?`,
		id.String(), userID.String(),
	)
	r, err := scanLiteResume(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// ListResumes returns a user's résumés, newest first.
func (l *LiteDB) ListResumes(ctx context.Context, userID uuid.UUID) ([]types.Resume, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`,
		userID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	resumes := []types.Resume{}
	for rows.Next() {
		r, err := scanLiteResume(rows)
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
func (l *LiteDB) UpdateResume(ctx context.Context, userID, id uuid.UUID, upd types.ResumeUpdate) (*types.Resume, error) {
	sets := []string{"updated_at = ?"}
	args := []any{l.timestamp()}

	if upd.ParsedData != nil {
		b, err := encodeJSON(upd.ParsedData)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "parsed_data = ?")
		args = append(args, string(b))
	}
	if upd.ResumeHealth != nil {
		b, err := encodeJSON(upd.ResumeHealth)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "resume_health = ?")
		args = append(args, string(b))
	}
	if upd.IsConfirmed != nil {
		sets = append(sets, "is_confirmed = ?")
		args = append(args, *upd.IsConfirmed)
	}
	args = append(args, id.String(), userID.String())

	res, err := l.db.ExecContext(ctx,
		`UPDATE resumes SET `+strings.Join(sets, ", ")+` WHERE id = ? AND user_id = ?`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return l.GetResume(ctx, userID, id)
}

// DeleteResume removes a résumé and reports whether it existed.
func (l *LiteDB) DeleteResume(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	res, err := l.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = ? AND user_id = ?`, id.String(), userID.String())
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLiteResume(row rowScanner) (*types.Resume, error) {
	var (
		r                types.Resume
		id, userID       string
		parsed, health   sql.NullString
		created, updated string
	)
	if err := row.Scan(&id, &userID, &r.FileName, &r.RawText, &parsed, &health, &r.IsConfirmed, &created, &updated); err != nil {
		return nil, err
	}

	var err error
	if r.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("failed to parse resume id: %w", err)
	}
	if r.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("failed to parse user id: %w", err)
	}
	if r.CreatedAt, err = parseTimestamp(created); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if r.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	if err := fillResumeJSON(&r, []byte(parsed.String), []byte(health.String)); err != nil {
		return nil, err
	}
	return &r, nil
}

func nullableText(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}
