package domain

// Backend task statuses. A render task moves from queued/processing to one of
// the terminal states; a scheduled reminder finishes as done.
const (
	TaskQueued     = "queued"
	TaskProcessing = "processing"
	TaskReady      = "ready"
	TaskCompleted  = "completed"
	TaskFailed     = "failed"
	TaskDone       = "done"
)

// IsTerminalTaskStatus reports whether a task status ends polling.
func IsTerminalTaskStatus(status string) bool {
	switch status {
	case TaskReady, TaskCompleted, TaskFailed, TaskDone:
		return true
	}
	return false
}
