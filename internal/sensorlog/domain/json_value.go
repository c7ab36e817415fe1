package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

var kindNames = map[Kind]string{
	KindUndefined: "undefined",
	KindNull:      "null",
	KindString:    "string",
	KindNumber:    "number",
	KindBool:      "bool",
	KindObject:    "object",
	KindArray:     "array",
}

func (k Kind) String() string {
	return kindNames[k]
}

const objectText = "[object Object]"

// JSONValue keeps a raw JSON value of any kind until it is coerced to text.
type JSONValue struct {
	raw json.RawMessage
}

func (v *JSONValue) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], data...)
	return nil
}

func (v JSONValue) Kind() Kind {
	trimmed := bytes.TrimSpace(v.raw)
	if len(trimmed) == 0 {
		return KindUndefined
	}

	switch trimmed[0] {
	case 'n':
		return KindNull
	case '"':
		return KindString
	case 't', 'f':
		return KindBool
	case '{':
		return KindObject
	case '[':
		return KindArray
	default:
		return KindNumber
	}
}

// Text coerces the value to text. Strings are returned as is, numbers in their
// shortest decimal form, objects as "[object Object]" and arrays as their
// elements joined by commas. Null and undefined values cannot be coerced.
func (v JSONValue) Text() (string, error) {
	switch v.Kind() {
	case KindUndefined, KindNull:
		return "", fmt.Errorf("%w: value is %s", ErrValidation, v.Kind())
	}

	decoder := json.NewDecoder(bytes.NewReader(v.raw))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return "", fmt.Errorf("%w: decoding value: %w", ErrValidation, err)
	}

	return coerceText(value), nil
}

func coerceText(value any) string {
	switch val := value.(type) {
	case string:
		return val
	case json.Number:
		return numberText(val)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, len(val))
		for i, element := range val {
			if element == nil {
				continue
			}
			parts[i] = coerceText(element)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return objectText
	default:
		return fmt.Sprint(val)
	}
}

func numberText(n json.Number) string {
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil && !math.IsInf(f, 0) {
		return n.String()
	}

	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return exponentText(strconv.FormatFloat(f, 'e', -1, 64))
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

// exponentText drops the zero padding Go adds to exponents ("1e-07" -> "1e-7").
func exponentText(s string) string {
	mantissa, exponent, found := strings.Cut(s, "e")
	if !found || len(exponent) < 2 {
		return s
	}

	sign, digits := exponent[:1], strings.TrimLeft(exponent[1:], "0")
	if digits == "" {
		digits = "0"
	}

	return mantissa + "e" + sign + digits
}
