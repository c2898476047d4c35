// Package errors provides classified errors for the content layer.
//
// Every error carries a Category so callers can tell a missing entry apart
// from a broken transport without matching on message text.
package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"sort"
	"strings"
)

// Category is the broad class of a failure.
type Category string

const (
	CategoryNotFound   Category = "not_found"
	CategoryNetwork    Category = "network"
	CategoryDecode     Category = "decode"
	CategoryValidation Category = "validation"
	CategoryConfig     Category = "config"
	CategoryRender     Category = "render"
	CategoryGraphQL    Category = "graphql"
)

// ErrNotFound matches any error of CategoryNotFound via errors.Is.
var ErrNotFound = &ClassifiedError{category: CategoryNotFound, message: "not found"}

// Context carries structured key/value details attached to an error.
type Context map[string]any

// ClassifiedError is an error with a category, an optional cause and context.
type ClassifiedError struct {
	category Category
	message  string
	cause    error
	context  Context
}

// New creates a ClassifiedError without a cause.
func New(category Category, message string) *ClassifiedError {
	return &ClassifiedError{category: category, message: message}
}

// Wrap creates a ClassifiedError around cause. A nil cause yields nil.
func Wrap(category Category, cause error, message string) error {
	if cause == nil {
		return nil
	}
	return &ClassifiedError{category: category, message: message, cause: cause}
}

func NotFound(message string) *ClassifiedError {
	return New(CategoryNotFound, message)
}

func Validation(message string) *ClassifiedError {
	return New(CategoryValidation, message)
}

func Config(message string) *ClassifiedError {
	return New(CategoryConfig, message)
}

// Error implements the error interface. Context keys are rendered sorted.
func (e *ClassifiedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.category, e.message)
	if len(e.context) > 0 {
		keys := make([]string, 0, len(e.context))
		for k := range e.context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.context[k])
		}
		b.WriteString(")")
	}
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	return b.String()
}

func (e *ClassifiedError) Unwrap() error {
	return e.cause
}

// Category returns the error category.
func (e *ClassifiedError) Category() Category {
	return e.category
}

// Context returns a copy of the attached context.
func (e *ClassifiedError) Context() Context {
	return maps.Clone(e.context)
}

// With returns a copy of the error with key set in its context.
func (e *ClassifiedError) With(key string, value any) *ClassifiedError {
	ctx := maps.Clone(e.context)
	if ctx == nil {
		ctx = Context{}
	}
	ctx[key] = value
	return &ClassifiedError{category: e.category, message: e.message, cause: e.cause, context: ctx}
}

// Is matches another ClassifiedError by category. ErrNotFound therefore
// matches every not-found error regardless of message.
func (e *ClassifiedError) Is(target error) bool {
	other, ok := target.(*ClassifiedError)
	if !ok {
		return false
	}
	if other == ErrNotFound {
		return e.category == CategoryNotFound
	}
	return e.category == other.category && e.message == other.message
}

// HasCategory reports whether any error in err's chain has the category.
func HasCategory(err error, category Category) bool {
	var ce *ClassifiedError
	for err != nil {
		if stderrors.As(err, &ce) {
			if ce.category == category {
				return true
			}
			err = ce.cause
			continue
		}
		return false
	}
	return false
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return HasCategory(err, CategoryNotFound)
}
