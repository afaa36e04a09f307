package biofmt_api

import (
	"strconv"
	"strings"
)

type ScalarKind int

const (
	ScalarMissing ScalarKind = iota
	ScalarInteger
	ScalarFloat
	ScalarString
	ScalarFlag
)

// Scalar is one typed value of a generic FORMAT field
type Scalar struct {
	Kind   ScalarKind
	Int    int64
	Float  float64
	String string
}

func (scalar Scalar) Display() string {
	switch scalar.Kind {
	case ScalarInteger:
		return strconv.FormatInt(scalar.Int, 10)
	case ScalarFloat:
		return strconv.FormatFloat(scalar.Float, 'g', -1, 64)
	case ScalarString:
		return scalar.String
	case ScalarFlag:
		return "true"
	}
	return "."
}

// Values that don't match the declared type are kept as strings
func parseScalar(raw string, declaredType string) Scalar {
	if isMissingValue(raw) {
		return Scalar{Kind: ScalarMissing}
	}
	switch declaredType {
	case "Integer":
		if value, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return Scalar{Kind: ScalarInteger, Int: value}
		}
	case "Float":
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			return Scalar{Kind: ScalarFloat, Float: value}
		}
	case "Flag":
		return Scalar{Kind: ScalarFlag}
	}
	return Scalar{Kind: ScalarString, String: raw}
}

// A FORMAT value without a dedicated decoder, typed by its header declaration
type GenericValue struct {
	key string
	raw string

	// The declared Number, "." when undeclared
	Number string

	// The declared Type, "String" when undeclared
	Type string

	// The declared description
	Description string

	// Whether the whole value is missing
	IsMissing bool

	// Whether the declared Number allows more than one value
	IsArray bool

	// The value when IsArray is false
	Scalar Scalar

	// The values when IsArray is true
	Array []Scalar
}

func decodeGeneric(key string, raw string, definition *HeaderLineIdNumberTypeDescription, _ FormatContext) FormatValue {
	generic := &GenericValue{key: key, raw: raw, Number: ".", Type: "String"}
	if definition != nil {
		generic.Number = definition.Number
		generic.Type = definition.Type
		generic.Description = definition.Description
	}
	generic.IsArray = generic.Number != "0" && generic.Number != "1"

	if isMissingValue(raw) {
		generic.IsMissing = true
		generic.Array = []Scalar{}
		return generic
	}
	if !generic.IsArray {
		generic.Scalar = parseScalar(raw, generic.Type)
		return generic
	}
	for _, part := range strings.Split(raw, ",") {
		generic.Array = append(generic.Array, parseScalar(part, generic.Type))
	}
	return generic
}

func (generic *GenericValue) Key() string { return generic.key }
func (generic *GenericValue) Raw() string { return generic.raw }

func (generic *GenericValue) RenderDisplay() string {
	if generic.IsMissing {
		return "."
	}
	if !generic.IsArray {
		return generic.Scalar.Display()
	}
	parts := make([]string, len(generic.Array))
	for index, scalar := range generic.Array {
		parts[index] = scalar.Display()
	}
	return strings.Join(parts, ",")
}

func (generic *GenericValue) Summarize() []SummaryItem {
	tooltip := "Number=" + generic.Number + ", Type=" + generic.Type
	if generic.Description != "" {
		tooltip = generic.Description + " (" + tooltip + ")"
	}
	return []SummaryItem{{Label: generic.key, Value: generic.RenderDisplay(), Tooltip: tooltip}}
}
