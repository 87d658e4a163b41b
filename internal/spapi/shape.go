package spapi

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Shape classifies how an upstream field is nested. The Catalog Items API
// has wrapped the same attribute differently across versions, so extraction
// dispatches on the shape rather than assuming one.
type Shape int

// Field shapes.
const (
	ShapeMissing Shape = iota // absent or null
	ShapeScalar               // string, number or bool
	ShapeArray                // [x, ...]
	ShapeValue                // {"value": x, ...}
	ShapeAmount               // {"amount": x, ...}
	ShapeObject               // any other object
)

var shapeNames = [...]string{"missing", "scalar", "array", "value", "amount", "object"}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "shape(" + strconv.Itoa(int(s)) + ")"
}

// maxUnwrapDepth bounds recursion through nested wrappers.
const maxUnwrapDepth = 4

// ShapeOf reports the shape of r.
func ShapeOf(r gjson.Result) Shape {
	switch {
	case !r.Exists() || r.Type == gjson.Null:
		return ShapeMissing
	case r.IsArray():
		return ShapeArray
	case r.IsObject():
		if r.Get("value").Exists() {
			return ShapeValue
		}
		if r.Get("amount").Exists() {
			return ShapeAmount
		}
		return ShapeObject
	default:
		return ShapeScalar
	}
}

// unwrapText extracts a non-empty string from scalar, array-of and
// {value} shapes.
func unwrapText(r gjson.Result) (string, bool) {
	return unwrapTextDepth(r, 0)
}

func unwrapTextDepth(r gjson.Result, depth int) (string, bool) {
	if depth > maxUnwrapDepth {
		return "", false
	}
	switch ShapeOf(r) {
	case ShapeScalar:
		s := strings.TrimSpace(r.String())
		return s, s != ""
	case ShapeArray:
		return unwrapTextDepth(r.Get("0"), depth+1)
	case ShapeValue:
		return unwrapTextDepth(r.Get("value"), depth+1)
	default:
		return "", false
	}
}

// unwrapAmount extracts a finite number from scalar, array-of, {value} and
// {amount} shapes. Numeric strings are parsed.
func unwrapAmount(r gjson.Result) (float64, bool) {
	return unwrapAmountDepth(r, 0)
}

func unwrapAmountDepth(r gjson.Result, depth int) (float64, bool) {
	if depth > maxUnwrapDepth {
		return 0, false
	}
	switch ShapeOf(r) {
	case ShapeScalar:
		var f float64
		switch r.Type {
		case gjson.Number:
			f = r.Float()
		case gjson.String:
			v, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
			if err != nil {
				return 0, false
			}
			f = v
		default:
			return 0, false
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case ShapeArray:
		return unwrapAmountDepth(r.Get("0"), depth+1)
	case ShapeValue:
		return unwrapAmountDepth(r.Get("value"), depth+1)
	case ShapeAmount:
		return unwrapAmountDepth(r.Get("amount"), depth+1)
	default:
		return 0, false
	}
}

// entries returns r as a list: array elements, or r itself for any other
// present value.
func entries(r gjson.Result) []gjson.Result {
	switch ShapeOf(r) {
	case ShapeMissing:
		return nil
	case ShapeArray:
		return r.Array()
	default:
		return []gjson.Result{r}
	}
}
