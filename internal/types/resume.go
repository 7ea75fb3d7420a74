package types

import (
	"time"

	"github.com/google/uuid"
)

// Resume is a stored parse result owned by a user.
type Resume struct {
	ID           uuid.UUID     `json:"id"`
	UserID       uuid.UUID     `json:"user_id"`
	FileName     string        `json:"file_name"`
	RawText      string        `json:"raw_text"`
	ParsedData   *Profile      `json:"parsed_data"`
	ResumeHealth *HealthReport `json:"resume_health"`
	IsConfirmed  bool          `json:"is_confirmed"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// ResumeSummary is the list view of a stored résumé.
type ResumeSummary struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	Score       *int      `json:"score"`
	IsConfirmed bool      `json:"is_confirmed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Summary returns the list view of r.
func (r *Resume) Summary() ResumeSummary {
	s := ResumeSummary{
		ID:          r.ID,
		FileName:    r.FileName,
		IsConfirmed: r.IsConfirmed,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.ResumeHealth != nil {
		score := r.ResumeHealth.Score
		s.Score = &score
	}
	return s
}

// ResumeUpdate carries the editable fields of a stored résumé. Nil fields are left unchanged.
type ResumeUpdate struct {
	ParsedData   *Profile      `json:"parsed_data,omitempty"`
	ResumeHealth *HealthReport `json:"resume_health,omitempty"`
	IsConfirmed  *bool         `json:"is_confirmed,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u *ResumeUpdate) IsEmpty() bool {
	return u.ParsedData == nil && u.ResumeHealth == nil && u.IsConfirmed == nil
}

// ParseResponse is returned after a document has been parsed and stored.
type ParseResponse struct {
	ResumeID       uuid.UUID    `json:"resume_id"`
	FileName       string       `json:"file_name"`
	RawText        string       `json:"raw_text"`
	ParsedData     *Profile     `json:"parsed_data"`
	ProfileExports ExportBundle `json:"profile_exports"`
}

// ExportResponse is returned by the export endpoint.
type ExportResponse struct {
	ResumeID       uuid.UUID    `json:"resume_id"`
	ProfileExports ExportBundle `json:"profile_exports"`
}

// ImportURLRequest asks the server to fetch and parse a résumé published at a URL.
type ImportURLRequest struct {
	URL        string `json:"url" validate:"required,url"`
	UseBrowser bool   `json:"use_browser,omitempty"`
}

// Validate checks that URL is present and absolute.
func (r *ImportURLRequest) Validate() error {
	return validate.Struct(r)
}
