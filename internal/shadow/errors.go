package shadow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agentx-labs/shadowpkg/internal/manifest"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	ErrNotEmpty         = errors.New("target directory is not empty")
	ErrUnknownWorkspace = errors.New("unknown workspace")
	ErrPolicyViolation  = errors.New("dependency policy violation")
	ErrMissingPin       = errors.New("missing root pin")
)

// NotEmptyError is returned when the install target already has entries.
type NotEmptyError struct {
	Dir string
}

func (e *NotEmptyError) Error() string {
	return fmt.Sprintf("shadow package installation can only be run in empty directories: %s is not empty", e.Dir)
}

func (e *NotEmptyError) Is(target error) bool { return target == ErrNotEmpty }

// UnknownWorkspaceError is returned for a member id absent from the registry.
type UnknownWorkspaceError struct {
	Name  string
	Known []string
}

func (e *UnknownWorkspaceError) Error() string {
	msg := fmt.Sprintf("no workspace named [ %s ] is known", e.Name)
	if len(e.Known) > 0 {
		msg += " (available: " + strings.Join(e.Known, ", ") + ")"
	}
	return msg
}

func (e *UnknownWorkspaceError) Is(target error) bool { return target == ErrUnknownWorkspace }

// PolicyReason says which convention a direct dependency broke.
type PolicyReason int

const (
	// ReasonOutsideWorkspace: the package name lacks the in-workspace prefix.
	ReasonOutsideWorkspace PolicyReason = iota + 1
	// ReasonNotWildcard: the version is not the wildcard sentinel.
	ReasonNotWildcard
)

// PolicyViolationError is returned when a member declares a direct
// dependency that is not an in-workspace package at the wildcard version.
type PolicyViolationError struct {
	Member  string
	DepType manifest.DependencyType
	Package string
	Version string
	Reason  PolicyReason
}

func (e *PolicyViolationError) Error() string {
	switch e.Reason {
	case ReasonOutsideWorkspace:
		return fmt.Sprintf("concrete %q [%s] declared for [%s] project which is not part of this workspace",
			e.DepType, e.Package, e.Member)
	default:
		return fmt.Sprintf("concrete %q entry [%s] declared for [%s] project which doesn't use a wildcard version (got %q)",
			e.DepType, e.Package, e.Member, e.Version)
	}
}

func (e *PolicyViolationError) Is(target error) bool { return target == ErrPolicyViolation }

// MissingPinError is returned when a shadow-declared package has no pin in
// the root manifest.
type MissingPinError struct {
	Member  string
	DepType manifest.DependencyType
	Package string
}

func (e *MissingPinError) Error() string {
	return fmt.Sprintf("shadow %q entry [%s] declared for [%s] project, but missing in root manifest",
		e.DepType, e.Package, e.Member)
}

func (e *MissingPinError) Is(target error) bool { return target == ErrMissingPin }
