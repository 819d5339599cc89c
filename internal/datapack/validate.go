package datapack

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	invalidNameChars      = regexp.MustCompile(`[\\/:*?"<>|]`)
	invalidNamespaceChars = regexp.MustCompile(`[^a-z0-9./_-]`)
)

// ValidationError describes why a user-entered value was rejected.
type ValidationError struct {
	Field   string
	Value   string
	Invalid []string // offending characters, in order of appearance
}

func (e *ValidationError) Error() string {
	if len(e.Invalid) == 0 {
		return fmt.Sprintf("%s must not be blank", e.Field)
	}
	return fmt.Sprintf("unexpected characters in %s: %s", e.Field, strings.Join(e.Invalid, ", "))
}

// ValidateName checks a datapack directory name. Blank names and the
// characters \ / : * ? " < > | are rejected.
func ValidateName(name string) error {
	return validate("datapack name", name, invalidNameChars)
}

// ValidateNamespace checks a namespace. Only a-z, 0-9, '.', '/', '_' and '-'
// are allowed, and the value must not be blank.
func ValidateNamespace(ns string) error {
	return validate("namespace", ns, invalidNamespaceChars)
}

func validate(field, value string, invalid *regexp.Regexp) error {
	if value == "" {
		return &ValidationError{Field: field, Value: value}
	}
	if bad := invalid.FindAllString(value, -1); len(bad) > 0 {
		return &ValidationError{Field: field, Value: value, Invalid: bad}
	}
	return nil
}
