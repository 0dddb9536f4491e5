package task

// TransitionResult holds the old and new status after a completion.
type TransitionResult struct {
	OldStatus Status
	NewStatus Status
}

// Complete marks t as done. Text and CreatedAt are never touched. Completing
// an already done task is allowed and leaves it done.
func Complete(t *Task) TransitionResult {
	old := t.Status
	t.Status = StatusDone
	return TransitionResult{
		OldStatus: old,
		NewStatus: StatusDone,
	}
}
