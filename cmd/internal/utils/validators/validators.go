package validators

import (
	"consultacnpj/cmd/internal/cnpj"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// CNPJ accepts freeform input (digits or the grouped NN.NNN.NNN/NNNN-NN
// format) and validates that it canonicalizes to exactly 14 digits. Check
// digits are deliberately not verified here; they are advisory only.
func CNPJ(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return cnpj.IsValid(cnpj.Canonical(field.String()))
}
