// Package model holds the plain records exchanged with the data-access
// layer. They mirror rows of the users, properties, reservations and
// property_reviews tables; the `db` tags name the columns pgx maps them from.
package model

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every input's Validate method. Field errors are
// reported under the json name ("cost_per_night", not "CostPerNight").
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
