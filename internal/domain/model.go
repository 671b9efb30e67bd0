package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Floor is a numbered level with a left and a right storage area.
type Floor struct {
	Number       int `json:"floor_number"  validate:"gt=0"`
	LeftColumns  int `json:"left_columns"  validate:"columns"`
	RightColumns int `json:"right_columns" validate:"columns"`
}

// Columns returns the column count of the given side.
func (f Floor) Columns(side Side) int {
	if side == SideLeft {
		return f.LeftColumns
	}
	return f.RightColumns
}

// Validate checks the floor number and both column counts.
func (f Floor) Validate() error {
	return validateStruct(f)
}

// Product records a model and quantity stored at a floor position.
// ID zero means "not yet assigned"; the store generates one on insert.
type Product struct {
	ID          int64  `json:"id"`
	Model       string `json:"model"        validate:"model"`
	Quantity    int    `json:"quantity"     validate:"gt=0"`
	FloorNumber int    `json:"floor_number" validate:"gt=0"`
	Position    string `json:"position"     validate:"position"`
}

// Validate checks model format, quantity, floor number and position format.
// Position bounds depend on the floor and are checked by the service.
func (p Product) Validate() error {
	return validateStruct(p)
}

// Pallet is reserved schema: stored alongside floors and products but not
// read or written by any operation.
type Pallet struct {
	ID          int64  `json:"id"`
	FloorNumber int    `json:"floor_number"`
	Position    string `json:"position"`
	Column      int    `json:"column"`
	Row         int    `json:"row"`
	Side        Side   `json:"side"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	mustRegister(v, "model", func(fl validator.FieldLevel) bool {
		return ValidateModel(fl.Field().String())
	})
	mustRegister(v, "columns", func(fl validator.FieldLevel) bool {
		return ValidateColumns(int(fl.Field().Int()))
	})
	mustRegister(v, "position", func(fl validator.FieldLevel) bool {
		_, ok := ParsePosition(fl.Field().String())
		return ok
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validation: %v", tag, err))
	}
}

// validateStruct runs the struct tags and reports the first failure as a
// Rejection.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return rejectionFor(verrs[0])
}

func rejectionFor(fe validator.FieldError) *Rejection {
	switch fe.Tag() {
	case "model":
		return Reject(RuleModelFormat,
			"product model %q is invalid: expected a letter followed by 4-6 letters, digits or '-'", fe.Value())
	case "columns":
		return Reject(RuleColumnRange,
			"%s must be between %d and %d, got %v", fe.Field(), MinColumns, MaxColumns, fe.Value())
	case "position":
		return Reject(RulePositionFormat,
			"position %q is invalid: expected <L|R><column>-<row>, e.g. L3-2", fe.Value())
	}

	switch fe.StructField() {
	case "Quantity":
		return Reject(RuleQuantityRange, "quantity must be a positive integer, got %v", fe.Value())
	case "Number", "FloorNumber":
		return Reject(RuleFloorNumber, "floor number must be a positive integer, got %v", fe.Value())
	}
	return Reject(Rule(fe.Tag()), "%s failed %s validation", fe.Field(), fe.Tag())
}
