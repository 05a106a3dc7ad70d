package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid")

// FieldError locates one problem in a configuration document, for example
// "seo.openGraph.images[2].url".
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every problem found instead of stopping at the
// first one.
type ValidationError struct {
	Items []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed:")
	for _, item := range e.Items {
		b.WriteString("\n - ")
		b.WriteString(item.Error())
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{Field: field, Message: msg})
}

func (e *ValidationError) Addf(field, format string, args ...any) {
	e.Add(field, fmt.Sprintf(format, args...))
}

// Nest appends the items of other with their field paths prefixed.
func (e *ValidationError) Nest(prefix string, other ValidationError) {
	for _, item := range other.Items {
		field := prefix
		if item.Field != "" {
			field = prefix + "." + item.Field
		}
		e.Add(field, item.Message)
	}
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}

// Err returns e as an error, or nil when nothing was recorded.
func (e ValidationError) Err() error {
	if !e.HasAny() {
		return nil
	}
	return e
}
