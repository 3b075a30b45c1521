package validation

import (
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// New returns a validator with the project's custom tags registered. Field
// errors are reported under their JSON names.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("password_policy", PasswordPolicy)
	_ = v.RegisterValidation("max_bytes", MaxBytes)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("dgte", DecimalGTE)
	_ = v.RegisterValidation("dlte", DecimalLTE)
	_ = v.RegisterValidation("pg_numeric", Numeric)

	// Decimals reach the tag funcs as their exact string form. Use dgte/dlte,
	// not gte/lte, on decimal fields.
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	if fl.Field().Kind() != reflect.String {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(fl.Field().String())
	return d, err == nil
}

// PasswordPolicy requires at least one digit and one uppercase letter.
// Length is left to min/max and max_bytes.
func PasswordPolicy(fl validator.FieldLevel) bool {
	var hasDigit, hasUpper bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	return hasDigit && hasUpper
}

// MaxBytes bounds the byte length of a string, where max counts runes.
// Passwords use it for the 72-byte bcrypt input limit.
func MaxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic("validation: bad max_bytes param " + fl.Param())
	}
	return len(fl.Field().String()) <= n
}

// DecimalGTE is gte for decimal.Decimal, compared exactly.
func DecimalGTE(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && d.Cmp(decimal.RequireFromString(fl.Param())) >= 0
}

// DecimalLTE is lte for decimal.Decimal, compared exactly.
func DecimalLTE(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && d.Cmp(decimal.RequireFromString(fl.Param())) <= 0
}

// Numeric checks a decimal fits a NUMERIC(precision, scale) column without
// rounding. The param is "precision scale", e.g. pg_numeric=14 2.
func Numeric(fl validator.FieldLevel) bool {
	precision, scale := numericParam(fl.Param())
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	if !d.Equal(d.Truncate(scale)) {
		return false
	}
	return d.Truncate(0).Abs().LessThan(decimal.New(1, precision-scale))
}

func numericParam(param string) (precision, scale int32) {
	parts := strings.Fields(param)
	if len(parts) != 2 {
		panic("validation: bad pg_numeric param " + param)
	}
	p, err1 := strconv.ParseInt(parts[0], 10, 32)
	s, err2 := strconv.ParseInt(parts[1], 10, 32)
	if err1 != nil || err2 != nil || s < 0 || s > p {
		panic("validation: bad pg_numeric param " + param)
	}
	return int32(p), int32(s)
}

// ValidPhone accepts digits with an optional leading '+' and the
// separators space, '-', '(' and ')'. At least ten digits are required.
func ValidPhone(fl validator.FieldLevel) bool {
	digits := 0
	for i, r := range fl.Field().String() {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 10
}
