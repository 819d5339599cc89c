package wizard

import "errors"

// ReportedError marks an error that was already shown to the user through
// Prompter.Error. Callers should exit non-zero without printing it again.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// Reported wraps err as a ReportedError. It returns nil for a nil err.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &ReportedError{Err: err}
}

// IsReported reports whether err has already been shown to the user.
func IsReported(err error) bool {
	var re *ReportedError
	return errors.As(err, &re)
}
