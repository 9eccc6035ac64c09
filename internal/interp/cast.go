package interp

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"jsonize/internal/mapping"
)

var (
	errNotInteger = errors.New("not an integer")
	errNotNumber  = errors.New("not a finite number")
	errNotBoolean = errors.New(`only "true" and "false" are valid boolean values`)
)

// cast converts an extracted scalar to kind. nil stays nil for every kind.
// path is the source path, used in errors.
func cast(v any, kind mapping.SinkKind, path string) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch kind {
	case mapping.SinkString:
		if s, ok := v.(string); ok {
			return s, nil
		}

		return fmt.Sprint(v), nil
	case mapping.SinkInteger:
		return castInteger(v, path)
	case mapping.SinkNumber:
		return castNumber(v, path)
	case mapping.SinkBoolean:
		return castBoolean(v, path)
	case mapping.SinkNull:
		return nil, nil
	case mapping.SinkInfer:
		if s, ok := v.(string); ok {
			return inferScalar(s), nil
		}

		return v, nil
	default:
		return v, nil
	}
}

func castInteger(v any, path string) (any, error) {
	switch n := v.(type) {
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return nil, &CastError{Path: path, Text: n, Kind: mapping.SinkInteger, Err: errNotInteger}
		}

		return i, nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1<<63 {
			return int(n), nil
		}
	}

	return nil, &CastError{Path: path, Text: fmt.Sprint(v), Kind: mapping.SinkInteger, Err: errNotInteger}
}

func castNumber(v any, path string) (any, error) {
	var f float64

	switch n := v.(type) {
	case string:
		parsed, err := parseDecimal(n)
		if err != nil {
			return nil, &CastError{Path: path, Text: n, Kind: mapping.SinkNumber, Err: errNotNumber}
		}

		f = parsed
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case float64:
		f = n
	default:
		return nil, &CastError{Path: path, Text: fmt.Sprint(v), Kind: mapping.SinkNumber, Err: errNotNumber}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &CastError{Path: path, Text: fmt.Sprint(v), Kind: mapping.SinkNumber, Err: errNotNumber}
	}

	return f, nil
}

func castBoolean(v any, path string) (any, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch b {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}

	return nil, &CastError{Path: path, Text: fmt.Sprint(v), Kind: mapping.SinkBoolean, Err: errNotBoolean}
}

// inferScalar picks the JSON type of text: a boolean literal, then a finite
// number (integral values become integers), then the text itself.
func inferScalar(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}

	f, err := parseDecimal(s)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return s
	}

	if f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		return int(f)
	}

	return f
}

// parseDecimal parses s as a decimal float. strconv also accepts hex
// mantissas such as "0x1p4"; those are rejected so they stay text.
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)

	digits := strings.TrimLeft(s, "+-")
	if len(digits) >= 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, strconv.ErrSyntax
	}

	return strconv.ParseFloat(s, 64)
}
