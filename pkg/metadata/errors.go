package metadata

import "fmt"

// DialectMismatchError is returned when a section's content does not match
// its dialect
type DialectMismatchError struct {
	Identifier string
	Dialect    string
	Expected   string
	Actual     string
}

func (e *DialectMismatchError) Error() string {
	return fmt.Sprintf("metadata section %q (dialect %s): expected %s but found %s",
		e.Identifier, e.Dialect, e.Expected, e.Actual)
}

// SectionError is returned when a section's content cannot be parsed
type SectionError struct {
	Identifier string
	Dialect    string
	Err        error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("metadata section %q (dialect %s): %v", e.Identifier, e.Dialect, e.Err)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}
