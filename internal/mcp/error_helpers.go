package mcp

import (
	"fmt"
	"strings"

	"github.com/aki/dsrename/internal/core/dataset"
)

// ErrorWithSuggestions represents an error with tool suggestions
type ErrorWithSuggestions struct {
	Message     string
	Suggestions []string
	cause       error
}

// Error returns the error message with suggestions
func (e *ErrorWithSuggestions) Error() string {
	if len(e.Suggestions) == 0 {
		return e.Message
	}

	var sb strings.Builder
	sb.WriteString(e.Message)
	sb.WriteString("\n\nDid you mean to use one of these tools instead?\n")
	for _, suggestion := range e.Suggestions {
		sb.WriteString("  - ")
		sb.WriteString(suggestion)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (e *ErrorWithSuggestions) Unwrap() error { return e.cause }

// NewErrorWithSuggestions creates a new error with tool suggestions
func NewErrorWithSuggestions(message string, suggestions ...string) error {
	return &ErrorWithSuggestions{
		Message:     message,
		Suggestions: suggestions,
	}
}

// DirectoryNotFoundError is returned when a dataset directory does not exist.
func DirectoryNotFoundError(path string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("directory not found: %s", path),
		"list_classes - List class directories under the dataset root",
	)
}

// NoClassesError is returned when a dataset root has no class directories.
func NoClassesError(root string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("no class directories found under %s", root),
		"Run 'dsrename classes ensure <root>' to create them",
	)
}

// InvalidParameterError returns an error with suggestions for invalid parameters
func InvalidParameterError(param string, expected string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("invalid %s: expected %s", param, expected),
		"Use the tool descriptions to understand parameter requirements",
	)
}

// datasetError attaches suggestions to dataset failures while keeping the
// original error reachable through errors.Is.
func datasetError(dir string, err error) error {
	switch dataset.KindOf(err) {
	case dataset.KindNotFound:
		return &ErrorWithSuggestions{
			Message:     err.Error(),
			Suggestions: []string{"list_classes - List class directories under the dataset root"},
			cause:       err,
		}
	case dataset.KindRenameFailed:
		return &ErrorWithSuggestions{
			Message:     err.Error(),
			Suggestions: []string{"verify_dataset - Inspect " + dir + " for leftover intermediate names"},
			cause:       err,
		}
	default:
		return err
	}
}
