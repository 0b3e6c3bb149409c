// Package errors provides standardized error handling for verbtree.
// It defines the error kinds raised while building verbs and resolving
// them against a selection, plus helpers for creating and wrapping errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// Common error constants for frequently occurring errors
var (
	ErrFileNotFound     = NewFileError("file not found", "", FileNotFound, nil)
	ErrInvalidPath      = NewFileError("invalid file path", "", InvalidPath, nil)
	ErrInvalidConfig    = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrMissingArgument  = NewVerbError("missing argument", "", MissingArgument, nil)
	ErrNoOtherPanel     = NewVerbError("no other panel", "", NoOtherPanel, nil)
	ErrDuplicateBinding = NewVerbError("duplicate binding", "", DuplicateBinding, nil)
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Verb error kinds
	InvalidVerb
	DuplicateBinding
	MissingArgument
	NoOtherPanel
)

func (k ErrorKind) String() string {
	switch k {
	case FileNotFound:
		return "file_not_found"
	case FileAccessDenied:
		return "file_access_denied"
	case InvalidPath:
		return "invalid_path"
	case InvalidConfig:
		return "invalid_config"
	case ConfigNotFound:
		return "config_not_found"
	case InvalidVerb:
		return "invalid_verb"
	case DuplicateBinding:
		return "duplicate_binding"
	case MissingArgument:
		return "missing_argument"
	case NoOtherPanel:
		return "no_other_panel"
	default:
		return "unknown"
	}
}

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// VerbError represents errors raised while building or resolving a verb.
// The subject is the verb's invocation or name, or the argument name for
// substitution failures.
type VerbError struct {
	ApplicationError
	subject string
}

// NewVerbError creates a new verb error
func NewVerbError(msg string, subject string, kind ErrorKind, err error) *VerbError {
	return &VerbError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		subject: subject,
	}
}

// Error returns the verb error message
func (e *VerbError) Error() string {
	if e.subject != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.subject, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.subject)
	}
	return e.ApplicationError.Error()
}

// Subject returns the verb or argument the error is about
func (e *VerbError) Subject() string {
	return e.subject
}

// Is lets errors.Is match sentinel verb errors by kind.
func (e *VerbError) Is(target error) bool {
	t, ok := target.(*VerbError)
	if !ok {
		return false
	}
	return t.subject == "" && t.kind == e.kind
}

// InvalidVerbf creates an InvalidVerb error for the given verb.
func InvalidVerbf(subject string, format string, args ...interface{}) *VerbError {
	return NewVerbError(fmt.Sprintf(format, args...), subject, InvalidVerb, nil)
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileNotFound
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

func isVerbKind(err error, kind ErrorKind) bool {
	var verbErr *VerbError
	if errors.As(err, &verbErr) {
		return verbErr.Kind() == kind
	}
	return false
}

// IsInvalidVerb checks if the error is a malformed or unreachable verb
func IsInvalidVerb(err error) bool {
	return isVerbKind(err, InvalidVerb)
}

// IsDuplicateBinding checks if a verb declared the same key or shortcut twice
func IsDuplicateBinding(err error) bool {
	return isVerbKind(err, DuplicateBinding)
}

// IsMissingArgument checks if substitution lacked a bound argument
func IsMissingArgument(err error) bool {
	return isVerbKind(err, MissingArgument)
}

// IsNoOtherPanel checks if a verb needed a second panel that was not open
func IsNoOtherPanel(err error) bool {
	return isVerbKind(err, NoOtherPanel)
}
