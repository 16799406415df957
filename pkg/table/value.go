package table

import (
	"cmp"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// kind ranks dynamic types so that mixed columns still sort deterministically.
type kind int

const (
	kindNil kind = iota
	kindBool
	kindNumber
	kindString
	kindOther
)

func kindOf(v Value) kind {
	switch v.(type) {
	case nil:
		return kindNil
	case bool:
		return kindBool
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return kindNumber
	case string:
		return kindString
	default:
		return kindOther
	}
}

// Compare orders two values: nil < bool < number < string < anything else.
// Numbers compare exactly by value regardless of their Go kind, so int64
// values above 2^53 stay distinct, NaN sorting first.
// Values of unknown types compare by their fmt representation.
func Compare(a, b Value) int {
	ka, kb := kindOf(a), kindOf(b)
	if ka != kb {
		return cmp.Compare(ka, kb)
	}
	switch ka {
	case kindNil:
		return 0
	case kindBool:
		ab, bb := a.(bool), b.(bool)
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		default:
			return 1
		}
	case kindNumber:
		if ai, ok := asInt(a); ok {
			if bi, ok := asInt(b); ok {
				return cmp.Compare(ai, bi)
			}
		}
		ax, bx := exact(a), exact(b)
		switch {
		case ax == nil && bx == nil:
			return 0
		case ax == nil:
			return -1
		case bx == nil:
			return 1
		}
		return ax.Cmp(bx)
	case kindString:
		return strings.Compare(a.(string), b.(string))
	default:
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}

// NumberID renders a number so that two numbers get the same string exactly
// when Compare reports them equal: integral values print as decimal integers
// whatever their Go kind. It returns "" for non-numeric values.
func NumberID(v Value) string {
	if !IsNumber(v) {
		return ""
	}
	if i, ok := asInt(v); ok {
		return strconv.FormatInt(i, 10)
	}
	x := exact(v)
	switch {
	case x == nil:
		return "NaN"
	case x.IsInt():
		i, _ := x.Int(nil)
		return i.String()
	default:
		return x.Text('g', -1)
	}
}

// exact converts a number to an arbitrary-precision float without rounding.
// NaN yields nil.
func exact(v Value) *big.Float {
	switch n := v.(type) {
	case uint:
		return new(big.Float).SetUint64(uint64(n))
	case uint64:
		return new(big.Float).SetUint64(n)
	case float32:
		return exactFloat(float64(n))
	case float64:
		return exactFloat(n)
	}
	if i, ok := asInt(v); ok {
		return new(big.Float).SetInt64(i)
	}
	return nil
}

func exactFloat(f float64) *big.Float {
	if math.IsNaN(f) {
		return nil
	}
	return new(big.Float).SetFloat64(f)
}

// Equal reports whether Compare(a, b) == 0.
func Equal(a, b Value) bool { return Compare(a, b) == 0 }

func asInt(v Value) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	}
	return 0, false
}

// Float converts a numeric value to float64.
// The second result is false for non-numeric values.
func Float(v Value) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return math.NaN(), false
}

// IsNumber reports whether v holds a numeric Go value.
func IsNumber(v Value) bool { return kindOf(v) == kindNumber }

// Format renders a value the way labels and filenames show it.
// Whole floats print without a fractional part.
func Format(v Value) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'g', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

// Parse infers a typed value from text: int, then float, then true/false,
// else the trimmed string itself.
func Parse(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}
