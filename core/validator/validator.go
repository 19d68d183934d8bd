package validator

import (
	"net/mail"
	"strings"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Errors []FieldError `json:"errors"`
}

func New() *ValidationResult {
	return &ValidationResult{}
}

func (v *ValidationResult) HasError() bool {
	return v != nil && len(v.Errors) > 0
}

func (v *ValidationResult) Add(field, message string) {
	v.Errors = append(v.Errors, FieldError{Field: field, Message: message})
}

func (v *ValidationResult) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, field+" is required")
	}
}

func (v *ValidationResult) MaxLength(field, value string, max int) {
	if len(value) > max {
		v.Add(field, field+" is too long")
	}
}

func (v *ValidationResult) Email(field, value string) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v.Add(field, field+" must be a valid email address")
	}
}

func (v *ValidationResult) MinLength(field, value string, min int) {
	if len(value) < min {
		v.Add(field, field+" is too short")
	}
}
