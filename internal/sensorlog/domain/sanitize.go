package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var numberPattern = regexp.MustCompile(`-?\d+(\.\d+)?`)

// SanitiseNumber extracts the first decimal number from the temperature text,
// accepting a comma as decimal separator.
func SanitiseNumber(t Temperature) (Temperature, error) {
	normalized := strings.Replace(string(t), ",", ".", 1)

	number := numberPattern.FindString(normalized)
	if number == "" {
		return "", fmt.Errorf("%w: temperature %q is not a valid number", ErrValidation, string(t))
	}

	return Temperature(number), nil
}
