package dberrors

import (
	"errors"
	"fmt"

	"github.com/ovh/mysqlerr/category"
)

// ClassifiedError is the structured outcome of classifying a driver failure.
// It is built fresh for each failure and never shared.
type ClassifiedError struct {
	Category category.Category `json:"category"`
	Code     int               `json:"code"`
	SQLState string            `json:"sqlstate,omitempty"`
	Message  string            `json:"message"`
}

// New returns a ClassifiedError with the given fields
func New(c category.Category, code int, message string) *ClassifiedError {
	return &ClassifiedError{Category: c, Code: code, Message: message}
}

func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Category, e.Code, e.Message)
}

// Is matches a category target against the classified category or any of its ancestors,
// so that errors.Is(err, category.DatabaseError) holds for an IntegrityError.
func (e *ClassifiedError) Is(target error) bool {
	if c, ok := target.(category.Category); ok {
		return e.Category.IsA(c)
	}
	return false
}

// CategoryOf extracts the category of the first ClassifiedError found in err's chain.
// Besides Unwrap, it follows the Underlying chain of juju errors, which do not implement Unwrap.
func CategoryOf(err error) (category.Category, bool) {
	for err != nil {
		var ce *ClassifiedError
		if errors.As(err, &ce) {
			return ce.Category, true
		}
		u, ok := err.(interface{ Underlying() error })
		if !ok {
			break
		}
		err = u.Underlying()
	}
	return category.BaseError, false
}
