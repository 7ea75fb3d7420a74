package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/resume-profiler/internal/db"
	"github.com/jonathan/resume-profiler/internal/types"
)

// UserStore is the account persistence used by UserService. Lookups return
// (nil, nil) when the row does not exist.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, phone string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// ResumeStore persists parse results. Every call is scoped to the owning user.
type ResumeStore interface {
	CreateResume(ctx context.Context, r *types.Resume) error
	GetResume(ctx context.Context, userID, id uuid.UUID) (*types.Resume, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]types.Resume, error)
	UpdateResume(ctx context.Context, userID, id uuid.UUID, upd types.ResumeUpdate) (*types.Resume, error)
	DeleteResume(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

// Store is implemented by both db.DB (PostgreSQL) and db.LiteDB (SQLite).
type Store interface {
	UserStore
	ResumeStore
	Ping(ctx context.Context) error
	Close()
}

var (
	_ Store = (*db.DB)(nil)
	_ Store = (*db.LiteDB)(nil)
)
