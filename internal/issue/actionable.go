// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"fmt"
	"strings"
)

type (
	// ActionableError is an error with context for user-facing messages.
	// It records what operation failed, which resource was involved, and
	// how the user might fix it.
	//
	// Use the Context builder for construction:
	//
	//	err := issue.NewContext().
	//		WithOperation("load manifest").
	//		WithResource("./blendpack.cue").
	//		WithSuggestion("Run 'blendpack init' to create one").
	//		Wrap(parseErr).
	//		Build()
	ActionableError struct {
		// Operation describes what was being attempted (e.g., "load manifest").
		Operation string

		// Resource identifies the file, path, or entity involved (optional).
		Resource string

		// Suggestions are hints on how to fix the issue (optional).
		Suggestions []string

		// Cause is the underlying error (optional).
		Cause error
	}

	// Context is a fluent builder for ActionableError values.
	Context struct {
		operation   string
		resource    string
		suggestions []string
		cause       error
	}
)

// NewContext creates a new ActionableError builder.
func NewContext() *Context {
	return &Context{}
}

// WithOperation sets the operation being attempted.
func (c *Context) WithOperation(op string) *Context {
	c.operation = op
	return c
}

// WithResource sets the resource involved.
func (c *Context) WithResource(resource string) *Context {
	c.resource = resource
	return c
}

// WithSuggestion appends a fix suggestion.
func (c *Context) WithSuggestion(s string) *Context {
	c.suggestions = append(c.suggestions, s)
	return c
}

// Wrap sets the underlying cause.
func (c *Context) Wrap(err error) *Context {
	c.cause = err
	return c
}

// Build constructs the ActionableError.
func (c *Context) Build() *ActionableError {
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Cause:       c.cause,
	}
}

// BuildError is Build typed as error, convenient in return statements.
func (c *Context) BuildError() error {
	return c.Build()
}

// Wrap is a shorthand for wrapping an error with operation and resource
// context. Returns nil when err is nil.
func Wrap(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Resource: resource, Cause: err}
}

// Error implements the error interface with a concise one-line message.
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)

	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}

	return msg.String()
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the error for terminal display. Suggestions are listed as
// bullet points; verbose mode additionally prints the full cause chain.
func (e *ActionableError) Format(verbose bool) string {
	var out strings.Builder
	out.WriteString(e.Error())

	for _, s := range e.Suggestions {
		out.WriteString("\n  • ")
		out.WriteString(s)
	}

	if verbose && e.Cause != nil {
		out.WriteString("\n\nCause chain:")
		depth := 1
		for cause := e.Cause; cause != nil; cause = unwrapOnce(cause) {
			out.WriteString(fmt.Sprintf("\n  %d. %s", depth, cause.Error()))
			depth++
		}
	}

	return out.String()
}

func unwrapOnce(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}
