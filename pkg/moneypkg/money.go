// Package moneypkg provides exact decimal helpers for monetary amounts.
//
// Amounts travel through the application as strings and are only parsed
// with shopspring/decimal. Binary floating point is never used for money.
package moneypkg

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Monetary values carry at most 4 fractional digits end to end.
const MaxFractionalDigits = 4

var decimalRegexp = regexp.MustCompile(`^\d+(\.\d{1,4})?$`)

// IsValidAmount reports whether s is a strictly positive decimal string
// with at most 4 fractional digits.
func IsValidAmount(s string) bool {
	if !decimalRegexp.MatchString(s) {
		return false
	}

	d, err := decimal.NewFromString(s)

	return err == nil && d.IsPositive()
}

// IsValidBalance reports whether s is a non-negative decimal string
// with at most 4 fractional digits.
func IsValidBalance(s string) bool {
	return decimalRegexp.MatchString(s)
}

// ValidAmount validates transaction amount fields bound from requests.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return IsValidAmount(s)
	}

	return false
}

// ValidBalance validates initial balance fields bound from requests.
var ValidBalance validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return IsValidBalance(s)
	}

	return false
}
