// SPDX-License-Identifier: MPL-2.0

package fault

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MissingRequiredField means a field required by the operation was not supplied.
	MissingRequiredField Kind = "MissingRequiredField"
	// InvalidEnum means a value is outside its closed set or fails format validation.
	InvalidEnum Kind = "InvalidEnum"
	// UnknownOperation means the requested alias or operation is not in the table.
	UnknownOperation Kind = "UnknownOperation"
	// DaemonUnavailable means the container engine daemon could not be reached.
	DaemonUnavailable Kind = "DaemonUnavailable"
	// PermissionDenied means the engine refused the call for lack of permissions.
	PermissionDenied Kind = "PermissionDenied"
	// ContainerNotFound means the referenced container does not exist.
	ContainerNotFound Kind = "ContainerNotFound"
	// ImageNotFound means the referenced image does not exist.
	ImageNotFound Kind = "ImageNotFound"
	// NetworkNotFound means the referenced network does not exist.
	NetworkNotFound Kind = "NetworkNotFound"
	// VolumeNotFound means the referenced volume does not exist.
	VolumeNotFound Kind = "VolumeNotFound"
	// PortConflict means a requested host port is already allocated.
	PortConflict Kind = "PortConflict"
	// Timeout means the subprocess exceeded its deadline and was terminated.
	Timeout Kind = "Timeout"
	// CommandFailed is the catch-all for any other failure.
	CommandFailed Kind = "CommandFailed"
)

var (
	// ErrMissingRequiredField is the sentinel matched by errors.Is for MissingRequiredField.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrInvalidEnum is the sentinel matched by errors.Is for InvalidEnum.
	ErrInvalidEnum = errors.New("invalid value")
	// ErrUnknownOperation is the sentinel matched by errors.Is for UnknownOperation.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrDaemonUnavailable is the sentinel matched by errors.Is for DaemonUnavailable.
	ErrDaemonUnavailable = errors.New("container engine daemon unavailable")
	// ErrPermissionDenied is the sentinel matched by errors.Is for PermissionDenied.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrContainerNotFound is the sentinel matched by errors.Is for ContainerNotFound.
	ErrContainerNotFound = errors.New("container not found")
	// ErrImageNotFound is the sentinel matched by errors.Is for ImageNotFound.
	ErrImageNotFound = errors.New("image not found")
	// ErrNetworkNotFound is the sentinel matched by errors.Is for NetworkNotFound.
	ErrNetworkNotFound = errors.New("network not found")
	// ErrVolumeNotFound is the sentinel matched by errors.Is for VolumeNotFound.
	ErrVolumeNotFound = errors.New("volume not found")
	// ErrPortConflict is the sentinel matched by errors.Is for PortConflict.
	ErrPortConflict = errors.New("port already allocated")
	// ErrTimeout is the sentinel matched by errors.Is for Timeout.
	ErrTimeout = errors.New("command timed out")
	// ErrCommandFailed is the sentinel matched by errors.Is for CommandFailed.
	ErrCommandFailed = errors.New("command failed")

	sentinels = map[Kind]error{
		MissingRequiredField: ErrMissingRequiredField,
		InvalidEnum:          ErrInvalidEnum,
		UnknownOperation:     ErrUnknownOperation,
		DaemonUnavailable:    ErrDaemonUnavailable,
		PermissionDenied:     ErrPermissionDenied,
		ContainerNotFound:    ErrContainerNotFound,
		ImageNotFound:        ErrImageNotFound,
		NetworkNotFound:      ErrNetworkNotFound,
		VolumeNotFound:       ErrVolumeNotFound,
		PortConflict:         ErrPortConflict,
		Timeout:              ErrTimeout,
		CommandFailed:        ErrCommandFailed,
	}
)

type (
	// Kind identifies one member of the closed error taxonomy.
	Kind string

	// Error is the single error type crossing component boundaries in the pipeline.
	Error struct {
		// Kind is the taxonomy member.
		Kind Kind
		// Message is the human readable description.
		Message string
		// Field names the offending parameter for validation kinds.
		Field string
		// Stderr holds the original stderr for execution kinds.
		Stderr string
		// ExitCode is the subprocess exit code, or 0 when no process exited.
		ExitCode int
		// Cause is an optional underlying error.
		Cause error
	}
)

// Kinds returns every member of the taxonomy in declaration order.
func Kinds() []Kind {
	return []Kind{
		MissingRequiredField, InvalidEnum, UnknownOperation,
		DaemonUnavailable, PermissionDenied, ContainerNotFound, ImageNotFound,
		NetworkNotFound, VolumeNotFound, PortConflict, Timeout, CommandFailed,
	}
}

// String returns the kind name.
func (k Kind) String() string { return string(k) }

// IsValidation reports whether the kind is detected before any subprocess is spawned.
func (k Kind) IsValidation() bool {
	return k == MissingRequiredField || k == InvalidEnum || k == UnknownOperation
}

// Validate returns an error if the kind is not a member of the taxonomy.
func (k Kind) Validate() error {
	if _, ok := sentinels[k]; !ok {
		return fmt.Errorf("unknown error kind %q", string(k))
	}
	return nil
}

// New creates an Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Missing creates a MissingRequiredField error for field.
func Missing(field string) *Error {
	return &Error{
		Kind:    MissingRequiredField,
		Field:   field,
		Message: fmt.Sprintf("required field %q is missing", field),
	}
}

// Invalid creates an InvalidEnum error for field.
func Invalid(field, format string, args ...any) *Error {
	return &Error{
		Kind:    InvalidEnum,
		Field:   field,
		Message: fmt.Sprintf("invalid value for %q: %s", field, fmt.Sprintf(format, args...)),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	return sb.String()
}

// Unwrap returns the cause, if any.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches the per-kind sentinel so callers can use errors.Is(err, fault.ErrTimeout).
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// KindOf returns the kind of err. Errors outside the taxonomy map to CommandFailed;
// a nil error yields the empty kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return CommandFailed
}

// As returns err as a *Error, wrapping foreign errors as CommandFailed.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}
	return &Error{Kind: CommandFailed, Message: err.Error(), Cause: err}
}
