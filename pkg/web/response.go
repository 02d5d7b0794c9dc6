// Package web defines common components for a web application.
package web

import (
	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for auth APIs.
type Response struct {
	AccessToken           string `json:"access_token,omitempty"`
	AccessTokenExpiresAt  string `json:"access_token_expires_at,omitempty"`
	RefreshToken          string `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt string `json:"refresh_token_expires_at,omitempty"`
	Data                  any    `json:"data,omitempty"`
	Error                 string `json:"error,omitempty"`
}

// Error wraps a given err into a json friendly struct.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// GetErrorMsg returns a human readable message for the violated validation tag.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "min":
		return " must be greater than or equal to " + fe.Param()
	case "max":
		return " must be less than or equal to " + fe.Param()
	case "oneof":
		return " must be one of: " + fe.Param()
	case "email":
		return " must be a valid email address"
	case "alphanum":
		return " must contain only letters and digits"
	case "amount":
		return " must be a positive decimal with up to 4 decimal places"
	case "balance":
		return " must be a non-negative decimal with up to 4 decimal places"
	}

	return " is invalid"
}

// ValidationErrorMsg extracts the first violated field from err and formats
// a field-by-field message suitable for form re-display.
func ValidationErrorMsg(err error) string {
	if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
		field := ve[0]
		return field.Field() + GetErrorMsg(field)
	}

	return err.Error()
}
