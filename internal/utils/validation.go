package utils

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

// MaxBodySize bounds a whole request body in bytes. It is a transport
// limit, not a message length rule.
const MaxBodySize = 1 << 20

// JSONSizeValidator validates JSON size limits
type JSONSizeValidator struct {
	maxSize int
}

// NewJSONSizeValidator creates a new validator with the specified max size
func NewJSONSizeValidator(maxSize int) *JSONSizeValidator {
	return &JSONSizeValidator{maxSize: maxSize}
}

// DefaultBodyValidator returns a validator with the MaxBodySize limit
func DefaultBodyValidator() *JSONSizeValidator {
	return NewJSONSizeValidator(MaxBodySize)
}

// MaxSize reports the configured limit
func (v *JSONSizeValidator) MaxSize() int {
	return v.maxSize
}

// ValidateSize checks if the data size is within limits
func (v *JSONSizeValidator) ValidateSize(data []byte) error {
	size := len(data)
	if size > v.maxSize {
		return fmt.Errorf("JSON size %d bytes exceeds maximum %d bytes", size, v.maxSize)
	}
	return nil
}

// ValidateJSON validates both size and JSON structure
func (v *JSONSizeValidator) ValidateJSON(data []byte) error {
	if err := v.ValidateSize(data); err != nil {
		return err
	}
	if !sonic.Valid(data) {
		return errors.New("invalid JSON")
	}
	return nil
}
