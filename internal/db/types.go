package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-profiler/internal/types"
)

// User represents a user account row
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set" db:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// encodeJSON marshals v for a JSON column; a nil pointer stores SQL NULL.
func encodeJSON[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	return b, nil
}

// decodeJSON unmarshals a JSON column; NULL or empty yields nil.
func decodeJSON[T any](raw []byte) (*T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %T: %w", v, err)
	}
	return &v, nil
}

// resumeColumns is the select list shared by every résumé query.
const resumeColumns = `id, user_id, file_name, raw_text, parsed_data, resume_health, is_confirmed, created_at, updated_at`

func fillResumeJSON(r *types.Resume, parsed, health []byte) error {
	profile, err := decodeJSON[types.Profile](parsed)
	if err != nil {
		return err
	}
	report, err := decodeJSON[types.HealthReport](health)
	if err != nil {
		return err
	}
	r.ParsedData = profile
	r.ResumeHealth = report
	return nil
}
