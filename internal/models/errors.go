package models

// ValidationError marks input that fails a structural invariant. Handlers
// map it to 400, the batch orchestrator records it per module instead of
// aborting the batch.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }
