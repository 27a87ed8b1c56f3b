// Package errors provides sentinel errors and custom error types for the stoke application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrUnknownTarget indicates that a referenced target was never registered
	ErrUnknownTarget = errors.New("unknown target")

	// ErrCyclicDependency indicates that the dependency graph contains a cycle
	ErrCyclicDependency = errors.New("cyclic dependency")

	// ErrRecipeFailure indicates that a recipe line exited with failure
	ErrRecipeFailure = errors.New("recipe failed")

	// ErrDuplicateTarget indicates a redefinition under a strict registry
	ErrDuplicateTarget = errors.New("duplicate target")

	// ErrParse indicates a malformed declaration file
	ErrParse = errors.New("parse error")
)

// UnknownTargetError represents a reference to a target that was never registered
type UnknownTargetError struct {
	Name string
	// Parent is the target that referenced Name, empty for a top-level request
	Parent string
}

func (e *UnknownTargetError) Error() string {
	if e.Parent != "" {
		return fmt.Sprintf("no rule to make target '%s', needed by '%s'", e.Name, e.Parent)
	}
	return fmt.Sprintf("no rule to make target '%s'", e.Name)
}

// Is returns true if the target error is ErrUnknownTarget
func (e *UnknownTargetError) Is(target error) bool {
	return target == ErrUnknownTarget
}

// NewUnknownTargetError creates a new UnknownTargetError
func NewUnknownTargetError(name, parent string) *UnknownTargetError {
	return &UnknownTargetError{Name: name, Parent: parent}
}

// CyclicDependencyError represents a cycle reachable from the requested target.
// Cycle starts and ends with the same name.
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("circular dependency: %s", strings.Join(e.Cycle, " -> "))
}

// Is returns true if the target error is ErrCyclicDependency
func (e *CyclicDependencyError) Is(target error) bool {
	return target == ErrCyclicDependency
}

// NewCyclicDependencyError creates a new CyclicDependencyError
func NewCyclicDependencyError(cycle []string) *CyclicDependencyError {
	return &CyclicDependencyError{Cycle: cycle}
}

// RecipeFailure represents a recipe line that exited with failure
type RecipeFailure struct {
	Target     string
	Line       string
	ExitStatus int
	Err        error
}

func (e *RecipeFailure) Error() string {
	msg := fmt.Sprintf("[%s] %s: exit status %d", e.Target, e.Line, e.ExitStatus)
	if e.Err != nil && e.ExitStatus < 0 {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Is returns true if the target error is ErrRecipeFailure
func (e *RecipeFailure) Is(target error) bool {
	return target == ErrRecipeFailure
}

func (e *RecipeFailure) Unwrap() error {
	return e.Err
}

// NewRecipeFailure creates a new RecipeFailure
func NewRecipeFailure(target, line string, exitStatus int, err error) *RecipeFailure {
	return &RecipeFailure{
		Target:     target,
		Line:       line,
		ExitStatus: exitStatus,
		Err:        err,
	}
}

// DuplicateTargetError represents a second registration of a target name
type DuplicateTargetError struct {
	Name string
}

func (e *DuplicateTargetError) Error() string {
	return fmt.Sprintf("target %s is already defined", e.Name)
}

// Is returns true if the target error is ErrDuplicateTarget
func (e *DuplicateTargetError) Is(target error) bool {
	return target == ErrDuplicateTarget
}

// NewDuplicateTargetError creates a new DuplicateTargetError
func NewDuplicateTargetError(name string) *DuplicateTargetError {
	return &DuplicateTargetError{Name: name}
}

// ParseError represents a malformed line in a declaration file
type ParseError struct {
	File    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// Is returns true if the target error is ErrParse
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParseError creates a new ParseError
func NewParseError(file string, line int, message string) *ParseError {
	return &ParseError{File: file, Line: line, Message: message}
}
