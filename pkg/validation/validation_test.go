package validation_test

import (
	"errors"
	"strings"
	"testing"

	"ninetytozero-backend/pkg/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passwordForm struct {
	Password string `json:"password" validate:"required,min=8,max=100,password_policy,max_bytes=72"`
}

type moneyForm struct {
	Rate   *decimal.Decimal `json:"rate" validate:"omitempty,dgte=0,dlte=100,pg_numeric=5 2"`
	Amount decimal.Decimal  `json:"amount" validate:"dgte=0,pg_numeric=14 2"`
}

func TestPasswordPolicy(t *testing.T) {
	v := validation.New()

	cases := map[string]bool{
		"Secret123":  true,
		"secret123":  false, // no uppercase
		"SecretPass": false, // no digit
		"Sh0rt":      false, // too short
		"ÄBCDEFG1":   true,
	}
	for pw, ok := range cases {
		err := v.Struct(passwordForm{Password: pw})
		if ok {
			assert.NoError(t, err, pw)
		} else {
			assert.Error(t, err, pw)
		}
	}
}

func TestPasswordByteLimit(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Struct(passwordForm{Password: "Secret1" + strings.Repeat("a", 65)}))

	err := v.Struct(passwordForm{Password: "Secret1" + strings.Repeat("a", 66)})
	require.Error(t, err)
	assert.Equal(t, []string{"password: must be at most 72 bytes"}, validation.FormatValidationErrors(err))

	// 40 runes but 73 bytes.
	err = v.Struct(passwordForm{Password: "Secret1" + strings.Repeat("é", 33)})
	require.Error(t, err)
	assert.Equal(t, []string{"password: must be at most 72 bytes"}, validation.FormatValidationErrors(err))
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestDecimalBounds(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Struct(moneyForm{Rate: dec("12.5"), Amount: decimal.RequireFromString("100")}))
	assert.NoError(t, v.Struct(moneyForm{Rate: nil, Amount: decimal.Zero}))
	assert.NoError(t, v.Struct(moneyForm{Rate: dec("100"), Amount: decimal.RequireFromString("999999999999.99")}))
	assert.Error(t, v.Struct(moneyForm{Rate: dec("100.01")}))
	assert.Error(t, v.Struct(moneyForm{Rate: dec("-1")}))
	assert.Error(t, v.Struct(moneyForm{Amount: decimal.RequireFromString("-0.01")}))

	// Exact comparison; a float64 conversion would round this to 100.
	assert.Error(t, v.Struct(moneyForm{Rate: dec("100.0000000000000001")}))
}

func TestDecimalNumeric(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Struct(moneyForm{Amount: decimal.RequireFromString("12.30")}))
	assert.NoError(t, v.Struct(moneyForm{Amount: decimal.RequireFromString("12.3400")}))

	err := v.Struct(moneyForm{Amount: decimal.RequireFromString("12.3456789")})
	require.Error(t, err)
	assert.Equal(t, []string{"amount: must have at most 12 integer digits and 2 decimal places"}, validation.FormatValidationErrors(err))

	err = v.Struct(moneyForm{Amount: decimal.RequireFromString("1e20")})
	require.Error(t, err)
	assert.Equal(t, []string{"amount: must have at most 12 integer digits and 2 decimal places"}, validation.FormatValidationErrors(err))

	assert.Error(t, v.Struct(moneyForm{Amount: decimal.RequireFromString("1000000000000")}))
	assert.Error(t, v.Struct(moneyForm{Rate: dec("12.345")}))
}

func TestFormatValidationErrors(t *testing.T) {
	v := validation.New()

	err := v.Struct(passwordForm{Password: "abc"})
	require.Error(t, err)

	msgs := validation.FormatValidationErrors(err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "password: must be at least 8 characters", msgs[0])

	err = v.Struct(moneyForm{Rate: dec("101")})
	require.Error(t, err)
	assert.Equal(t, []string{"rate: must be less than or equal to 100"}, validation.FormatValidationErrors(err))

	assert.Equal(t, []string{"boom"}, validation.FormatValidationErrors(errors.New("boom")))
}

type phoneForm struct {
	Phone string `json:"phone" validate:"required,valid_phone"`
}

func TestValidPhone(t *testing.T) {
	v := validation.New()

	for _, ok := range []string{"9876543210", "+91 98765 43210", "(022) 1234-5678"} {
		assert.NoError(t, v.Struct(phoneForm{Phone: ok}), ok)
	}
	for _, bad := range []string{"12345", "98765x43210", "91+9876543210"} {
		assert.Error(t, v.Struct(phoneForm{Phone: bad}), bad)
	}

	err := v.Struct(phoneForm{Phone: "abc"})
	assert.Equal(t, []string{"phone: must be a phone number with at least 10 digits"}, validation.FormatValidationErrors(err))
}
