package biofmt_api

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// The source tag of every diagnostic
const DiagnosticSource = "biofmt"

// Severity of a diagnostic, numbered like the editor protocol does
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

func (severity Severity) String() string {
	switch severity {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "information"
	case SeverityHint:
		return "hint"
	}
	return "unknown"
}

// A position in a document. Character counts UTF-16 code units.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// A diagnostic for one range on one line
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Range    Range    `json:"range"`
	Message  string   `json:"message"`
	Source   string   `json:"source"`
}

func newDiagnostic(line int, start int, end int, message string, severity Severity) Diagnostic {
	return Diagnostic{
		Severity: severity,
		Range: Range{
			Start: Position{Line: line, Character: start},
			End:   Position{Line: line, Character: end},
		},
		Message: message,
		Source:  DiagnosticSource,
	}
}

// utf16Len returns the length of a string in UTF-16 code units
func utf16Len(text string) int {
	length := 0
	for _, letter := range text {
		if letter > 0xFFFF && letter <= utf8.MaxRune {
			length += 2
		} else {
			length++
		}
	}
	return length
}

// ColumnOffset returns the character offset at which the column with the given index starts
// in the tab-joined line
func ColumnOffset(columns []string, index int) int {
	if index <= 0 {
		return 0
	}
	count := min(index, len(columns))
	offset := count
	for _, column := range columns[:count] {
		offset += utf16Len(column)
	}
	return offset
}

// ColumnDiagnostic creates a diagnostic covering one column of a line.
// A column index out of range results in an empty range.
func ColumnDiagnostic(line int, columns []string, index int, message string, severity Severity) Diagnostic {
	start := ColumnOffset(columns, index)
	length := 0
	if index >= 0 && index < len(columns) {
		length = utf16Len(columns[index])
	}
	return newDiagnostic(line, start, start+length, message, severity)
}

// LineDiagnostic creates a diagnostic covering a complete line
func LineDiagnostic(line int, lineText string, message string, severity Severity) Diagnostic {
	return newDiagnostic(line, 0, utf16Len(lineText), message, severity)
}

// ShouldSkipLine reports whether a line carries no data: blank lines, comments and
// lines starting with one of the given prefixes
func ShouldSkipLine(line string, extraPrefixes ...string) bool {
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
		return true
	}
	for _, prefix := range extraPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// diagnosticCollector gathers diagnostics until the configured maximum is reached
type diagnosticCollector struct {
	diagnostics []Diagnostic
	max         int
}

func newDiagnosticCollector(max int) *diagnosticCollector {
	return &diagnosticCollector{diagnostics: []Diagnostic{}, max: max}
}

func (collector *diagnosticCollector) add(diagnostic Diagnostic) {
	if collector.full() {
		return
	}
	collector.diagnostics = append(collector.diagnostics, diagnostic)
}

func (collector *diagnosticCollector) full() bool {
	return len(collector.diagnostics) >= collector.max
}

// A column that has to hold a non-negative integer
type numericColumn struct {
	Index int
	Name  string
}

// validateNumericColumns reports every listed column that isn't a non-negative integer.
// Columns beyond the end of the line are skipped.
func validateNumericColumns(out *diagnosticCollector, line int, columns []string, numeric []numericColumn) {
	for _, column := range numeric {
		if column.Index >= len(columns) {
			continue
		}
		value, ok := parseInteger(columns[column.Index])
		if !ok {
			out.add(ColumnDiagnostic(line, columns, column.Index, fmt.Sprintf("%s must be an integer", column.Name), SeverityError))
			continue
		}
		if value < 0 {
			out.add(ColumnDiagnostic(line, columns, column.Index, fmt.Sprintf("%s must be non-negative", column.Name), SeverityError))
		}
	}
}

// A pair of coordinate columns where start has to come before end
type coordinatePair struct {
	Start      int
	End        int
	AllowEqual bool
	Message    string
	Severity   Severity
}

// validateCoordinatePair reports a line whose start coordinate isn't before its end coordinate.
// Missing or non-numeric coordinates are left to validateNumericColumns.
func validateCoordinatePair(out *diagnosticCollector, line int, lineText string, columns []string, pair coordinatePair) {
	if pair.Start >= len(columns) || pair.End >= len(columns) {
		return
	}
	start, ok := parseInteger(columns[pair.Start])
	if !ok {
		return
	}
	end, ok := parseInteger(columns[pair.End])
	if !ok {
		return
	}
	if start < end || (pair.AllowEqual && start == end) {
		return
	}
	out.add(LineDiagnostic(line, lineText, pair.Message, pair.Severity))
}

// validateStrand reports a strand column that holds a value outside the permitted set
func validateStrand(out *diagnosticCollector, line int, columns []string, index int, permitted []string, severity Severity) {
	if index >= len(columns) {
		return
	}
	if slices.Contains(permitted, columns[index]) {
		return
	}
	message := fmt.Sprintf("Invalid strand '%s', expected one of: %s", columns[index], strings.Join(permitted, ", "))
	out.add(ColumnDiagnostic(line, columns, index, message, severity))
}

// validateEnumColumn reports a column that holds a value outside the permitted set
func validateEnumColumn(out *diagnosticCollector, line int, columns []string, index int, name string, permitted []string, severity Severity) {
	if index >= len(columns) || slices.Contains(permitted, columns[index]) {
		return
	}
	message := fmt.Sprintf("Invalid %s '%s', expected one of: %s", name, columns[index], strings.Join(permitted, ", "))
	out.add(ColumnDiagnostic(line, columns, index, message, severity))
}

// parseInteger parses a base 10 integer with an optional sign
func parseInteger(value string) (int64, bool) {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// isNumeric reports whether a value is a finite decimal number
func isNumeric(value string) bool {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false
	}
	return !math.IsNaN(parsed) && !math.IsInf(parsed, 0)
}
