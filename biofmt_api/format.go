package biofmt_api

import (
	"strconv"
	"strings"
)

// An integer that can be missing ('.') in a VCF record
type OptionalInt struct {
	Value int64
	Valid bool
}

// Some wraps a present integer
func Some(value int64) OptionalInt {
	return OptionalInt{Value: value, Valid: true}
}

// Missing returns an absent integer
func Missing() OptionalInt {
	return OptionalInt{}
}

func (optional OptionalInt) String() string {
	if !optional.Valid {
		return "."
	}
	return strconv.FormatInt(optional.Value, 10)
}

// parseOptionalInt maps '.', empty and non-numeric text to a missing value
func parseOptionalInt(raw string) OptionalInt {
	value, ok := parseInteger(strings.TrimSpace(raw))
	if !ok {
		return Missing()
	}
	return Some(value)
}

func parseOptionalInts(raw string) []OptionalInt {
	if isMissingValue(raw) {
		return []OptionalInt{}
	}
	parts := strings.Split(raw, ",")
	values := make([]OptionalInt, len(parts))
	for index, part := range parts {
		values[index] = parseOptionalInt(part)
	}
	return values
}

func joinOptionalInts(values []OptionalInt, separator string) string {
	if len(values) == 0 {
		return "."
	}
	parts := make([]string, len(values))
	for index, value := range values {
		parts[index] = value.String()
	}
	return strings.Join(parts, separator)
}

func isMissingValue(raw string) bool {
	return raw == "" || raw == "."
}

// The record a sample value belongs to
type FormatContext struct {
	// The reference allele
	Ref string

	// The alternate alleles, empty when ALT is '.'
	Alts []string
}

// NewFormatContext creates the context from the REF and ALT columns of a record
func NewFormatContext(ref string, alt string) FormatContext {
	context := FormatContext{Ref: ref, Alts: []string{}}
	if !isMissingValue(alt) {
		context.Alts = strings.Split(alt, ",")
	}
	return context
}

// NAlleles returns the amount of alleles of the record, reference included
func (context FormatContext) NAlleles() int {
	return 1 + len(context.Alts)
}

// allele returns the bases of the allele with the given index
func (context FormatContext) allele(index int64) (string, bool) {
	if index == 0 && context.Ref != "" {
		return context.Ref, true
	}
	if index >= 1 && int(index) <= len(context.Alts) {
		return context.Alts[index-1], true
	}
	return "", false
}

// One line of a value summary
type SummaryItem struct {
	Label   string
	Value   string
	Tooltip string
}

// A decoded per-sample FORMAT value
type FormatValue interface {
	// The FORMAT key the value was decoded for
	Key() string

	// The text the value was decoded from
	Raw() string

	// Label/value/tooltip lines describing the value
	Summarize() []SummaryItem

	// A single line representation of the value
	RenderDisplay() string
}

type formatDecoder func(key string, raw string, definition *HeaderLineIdNumberTypeDescription, context FormatContext) FormatValue

// The decoders of the well-known FORMAT keys, everything else is decoded as a generic value
var formatDecoders = map[string]formatDecoder{
	"GT": decodeGenotype,
	"GQ": decodeInteger,
	"DP": decodeInteger,
	"AD": decodeAlleleDepth,
	"PL": decodeLikelihood,
	"PS": decodeInteger,
	"FT": decodeFilter,
}

// DecodeFormatValue decodes the raw value of one FORMAT key of one sample.
// The definition is the header declaration of the key and may be nil.
func DecodeFormatValue(key string, raw string, definition *HeaderLineIdNumberTypeDescription, context FormatContext) FormatValue {
	decoder, ok := formatDecoders[key]
	if !ok {
		decoder = decodeGeneric
	}
	return decoder(key, raw, definition, context)
}

// A FORMAT key with its decoded value
type FormatField struct {
	Key   string
	Value FormatValue
}

// DecodeSample decodes every key of the FORMAT column for one sample column.
// Trailing keys the sample omits are decoded as missing values.
func DecodeSample(header *Header, formatColumn string, sampleColumn string, context FormatContext) []FormatField {
	keys := strings.Split(formatColumn, ":")
	values := strings.Split(sampleColumn, ":")
	fields := make([]FormatField, 0, len(keys))
	for index, key := range keys {
		raw := ""
		if index < len(values) {
			raw = values[index]
		}
		var definition *HeaderLineIdNumberTypeDescription
		if header != nil {
			if declared, ok := header.Format.Get(key); ok {
				definition = &declared
			}
		}
		fields = append(fields, FormatField{Key: key, Value: DecodeFormatValue(key, raw, definition, context)})
	}
	return fields
}
