package generator

import (
	"errors"
	"fmt"
)

var errEmptyOutput = errors.New("empty output")

type scriptError struct {
	language string
	script   string
	found    int
	min      int
}

func (e *scriptError) Error() string {
	return fmt.Sprintf("output for %s has %d distinct %s characters, need %d", e.language, e.found, e.script, e.min)
}

// ProviderError is a non-2xx response from the model provider.
type ProviderError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("provider returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider returned %d (%s): %s", e.StatusCode, e.Type, e.Message)
}
