package java

import (
	"errors"
	"fmt"
)

// ErrVersionUnparseable is returned when no major version can be read from a version string
var ErrVersionUnparseable = errors.New("unable to parse java version")

// ProcessSpawnError reports that the java executable could not be started
type ProcessSpawnError struct {
	Path string
	Err  error
}

func (e *ProcessSpawnError) Error() string {
	return fmt.Sprintf("failed to run %s: %v", e.Path, e.Err)
}

func (e *ProcessSpawnError) Unwrap() error {
	return e.Err
}

// ProcessExitError reports a java executable that exited unsuccessfully
type ProcessExitError struct {
	Path string
	Code int
}

func (e *ProcessExitError) Error() string {
	return fmt.Sprintf("%s -version exited with code %d", e.Path, e.Code)
}
