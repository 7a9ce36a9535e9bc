package deploy

import (
	"errors"
	"fmt"
)

// Step names a pipeline stage that calls a collaborator.
type Step string

const (
	StepRegistry Step = "query registry"
	StepBuild    Step = "build image"
	StepUpdate   Step = "update service"
	StepDiscover Step = "discover endpoint"
)

// ErrEmptyHostname is returned when discovery succeeds without a hostname.
var ErrEmptyHostname = errors.New("service has no public hostname")

// ErrEmptyLoginServer is returned when the registry query yields no address.
var ErrEmptyLoginServer = errors.New("registry has no login server")

// StepError wraps a collaborator failure with the step it happened in.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
