// Package validate enforces the form constraints checked before any
// write leaves the client.
package validate

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Title length bounds, inclusive, counted in characters.
const (
	TitleMin = 3
	TitleMax = 20
)

var (
	ErrTitleTooShort = errors.New("must be at least 3 characters")
	ErrTitleTooLong  = errors.New("must be at most 20 characters")
)

var v = validator.New()

// titleForm is the schema for the single validated field. The create
// form and the edit dialog both go through it.
type titleForm struct {
	Title string `validate:"required,min=3,max=20"`
}

// Title accepts candidates whose length is within [TitleMin, TitleMax]
// and rejects everything else with the bound that was violated.
func Title(title string) error {
	err := v.Struct(titleForm{Title: title})
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) {
		for _, fe := range fields {
			switch fe.Tag() {
			case "required", "min":
				return ErrTitleTooShort
			case "max":
				return ErrTitleTooLong
			}
		}
	}
	return err
}
