package task

import "errors"

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = errors.New("task not found")
