package task

import "errors"

// ErrTaskNotFound signals a lookup for a task id that does not exist or
// belongs to another user.
var ErrTaskNotFound = errors.New("task not found")
