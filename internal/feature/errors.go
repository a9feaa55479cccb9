package feature

import (
	"errors"
	"fmt"
)

// Rule identifies the validation rule a document violated. Rules are stable
// strings so build output can name them.
type Rule string

const (
	RuleMalformedHeader      Rule = "malformed-header"
	RuleMissingRequiredField Rule = "missing-required-field"
	RuleUnknownStatus        Rule = "unknown-subject-status"
	RuleNoSubjects           Rule = "no-subjects"
)

// Sentinel errors, one per rule, for errors.Is checks.
var (
	ErrMalformedHeader      = errors.New("front matter header missing or not parseable")
	ErrMissingRequiredField = errors.New("required front matter field missing")
	ErrUnknownStatus        = errors.New("subject status outside the supported set")
	ErrNoSubjects           = errors.New("document declares no subject statuses")
)

// ValidationError reports a content bug in a single document: the offending
// file, the rule violated, and a human-readable message. These abort the
// build; static inputs are fixed at the source, not retried.
type ValidationError struct {
	Path    string
	Rule    Rule
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Rule, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Rule, e.Cause)
}

func (e *ValidationError) Unwrap() error { return e.Cause }

func newValidationError(path string, rule Rule, message string) *ValidationError {
	return &ValidationError{Path: path, Rule: rule, Message: message, Cause: sentinelFor(rule)}
}

func wrapValidationError(path string, rule Rule, cause error) *ValidationError {
	// Chain the rule sentinel in front of the cause so errors.Is matches both.
	return &ValidationError{Path: path, Rule: rule, Cause: fmt.Errorf("%w: %w", sentinelFor(rule), cause)}
}

func sentinelFor(rule Rule) error {
	switch rule {
	case RuleMalformedHeader:
		return ErrMalformedHeader
	case RuleMissingRequiredField:
		return ErrMissingRequiredField
	case RuleUnknownStatus:
		return ErrUnknownStatus
	case RuleNoSubjects:
		return ErrNoSubjects
	}
	return nil
}
