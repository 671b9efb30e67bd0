package domain

import (
	"errors"
	"fmt"
)

// Rule names the input rule an operation was rejected for.
type Rule string

const (
	RuleModelFormat        Rule = "model_format"
	RuleQuantityRange      Rule = "quantity_range"
	RuleColumnRange        Rule = "column_range"
	RuleFloorCount         Rule = "floor_count"
	RuleFloorNumber        Rule = "floor_number"
	RulePositionFormat     Rule = "position_format"
	RulePositionRange      Rule = "position_range"
	RuleFloorNotFound      Rule = "floor_not_found"
	RuleAlreadyInitialized Rule = "already_initialized"
	RuleConfirmation       Rule = "confirmation"
	RuleLayoutFormat       Rule = "layout_format"
	RuleProductNotFound    Rule = "product_not_found"
)

// Rejection reports that caller input broke a format or range rule.
// Nothing was written when a Rejection is returned.
type Rejection struct {
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

func (r *Rejection) Error() string { return r.Message }

// Reject builds a Rejection with a formatted message.
func Reject(rule Rule, format string, args ...any) *Rejection {
	return &Rejection{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// AsRejection extracts a Rejection from err, if there is one.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// IsRejection reports whether err was caused by invalid input.
func IsRejection(err error) bool {
	_, ok := AsRejection(err)
	return ok
}

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err was caused by the store.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
