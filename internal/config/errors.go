package config

import (
	"errors"
	"fmt"
)

// ErrMissingSetting is matched by every MissingSettingError.
var ErrMissingSetting = errors.New("required setting is missing")

// MissingSettingError names the first required setting that is absent or empty.
type MissingSettingError struct {
	Name string
}

func (e *MissingSettingError) Error() string {
	return fmt.Sprintf("%s is not set", e.Name)
}

func (e *MissingSettingError) Is(target error) bool {
	return target == ErrMissingSetting
}
