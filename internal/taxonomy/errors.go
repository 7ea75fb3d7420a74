package taxonomy

import "fmt"

// LoadError is returned when a lookup table is missing, malformed, or fails schema validation.
type LoadError struct {
	Table   string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("loading %s table: %s: %v", e.Table, e.Message, e.Cause)
	}
	return fmt.Sprintf("loading %s table: %s", e.Table, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
