package biofmt_api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnOffset(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
	}{
		{name: "no columns", columns: []string{}},
		{name: "one column", columns: []string{"chr1"}},
		{name: "many columns", columns: []string{"chr1", "100", "200", "name", "0", "+"}},
		{name: "empty columns", columns: []string{"", "a", "", "", "bc", ""}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for index := 0; index <= len(test.columns); index++ {
				expected := len(strings.Join(test.columns[:index], "\t"))
				if index > 0 {
					expected++
				}
				assert.Equal(t, expected, ColumnOffset(test.columns, index), "index %d", index)
			}
		})
	}
}

func TestColumnOffsetCountsUtf16Units(t *testing.T) {
	// U+00E9 is one code unit, U+1F9EC needs a surrogate pair
	columns := []string{"é", "🧬", "x"}
	assert.Equal(t, 0, ColumnOffset(columns, 0))
	assert.Equal(t, 2, ColumnOffset(columns, 1))
	assert.Equal(t, 5, ColumnOffset(columns, 2))
}

func TestColumnDiagnostic(t *testing.T) {
	columns := strings.Split("chr1\t100\t50", "\t")

	diagnostic := ColumnDiagnostic(3, columns, 1, "bad", SeverityWarning)
	assert.Equal(t, Range{Start: Position{Line: 3, Character: 5}, End: Position{Line: 3, Character: 8}}, diagnostic.Range)
	assert.Equal(t, SeverityWarning, diagnostic.Severity)
	assert.Equal(t, DiagnosticSource, diagnostic.Source)

	outOfRange := ColumnDiagnostic(3, columns, 5, "missing", SeverityError)
	assert.Equal(t, outOfRange.Range.Start.Character, outOfRange.Range.End.Character)
}

func TestLineDiagnostic(t *testing.T) {
	diagnostic := LineDiagnostic(7, "chr1\t200\t100", "order", SeverityError)
	assert.Equal(t, 0, diagnostic.Range.Start.Character)
	assert.Equal(t, 12, diagnostic.Range.End.Character)
	assert.Equal(t, 7, diagnostic.Range.End.Line)
}

func TestShouldSkipLine(t *testing.T) {
	assert.True(t, ShouldSkipLine(""))
	assert.True(t, ShouldSkipLine("   \t"))
	assert.True(t, ShouldSkipLine("# comment"))
	assert.True(t, ShouldSkipLine("track name=x", trackPrefixes...))
	assert.True(t, ShouldSkipLine("browser position chr1", trackPrefixes...))
	assert.False(t, ShouldSkipLine("track name=x"))
	assert.False(t, ShouldSkipLine("chr1\t1\t2", trackPrefixes...))
}

func TestDiagnosticCollectorCap(t *testing.T) {
	collector := newDiagnosticCollector(2)
	for i := 0; i < 5; i++ {
		collector.add(LineDiagnostic(i, "x", "m", SeverityError))
	}
	require.Len(t, collector.diagnostics, 2)
	assert.Equal(t, 1, collector.diagnostics[1].Range.Start.Line)
	assert.True(t, collector.full())
}

func TestValidateNumericColumns(t *testing.T) {
	collector := newDiagnosticCollector(10)
	columns := []string{"chr1", "-5", "abc", "7"}
	validateNumericColumns(collector, 0, columns, []numericColumn{
		{Index: 1, Name: "Start"},
		{Index: 2, Name: "End"},
		{Index: 3, Name: "Score"},
		{Index: 9, Name: "Beyond"},
	})

	require.Len(t, collector.diagnostics, 2)
	assert.Equal(t, "Start must be non-negative", collector.diagnostics[0].Message)
	assert.Equal(t, "End must be an integer", collector.diagnostics[1].Message)
}

func TestValidateCoordinatePair(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		allowEqual bool
		reported   bool
	}{
		{name: "ordered", line: "c\t1\t2", reported: false},
		{name: "reversed", line: "c\t2\t1", reported: true},
		{name: "equal", line: "c\t2\t2", reported: true},
		{name: "equal allowed", line: "c\t2\t2", allowEqual: true, reported: false},
		{name: "non-numeric", line: "c\tx\t1", reported: false},
		{name: "missing end", line: "c\t2", reported: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			collector := newDiagnosticCollector(10)
			validateCoordinatePair(collector, 0, test.line, strings.Split(test.line, "\t"), coordinatePair{
				Start:      1,
				End:        2,
				AllowEqual: test.allowEqual,
				Message:    "order",
				Severity:   SeverityError,
			})
			assert.Equal(t, test.reported, len(collector.diagnostics) == 1)
		})
	}
}

func TestValidateStrand(t *testing.T) {
	collector := newDiagnosticCollector(10)
	validateStrand(collector, 0, []string{"a", "+"}, 1, bedStrands, SeverityWarning)
	validateStrand(collector, 0, []string{"a", "x"}, 1, bedStrands, SeverityWarning)
	validateStrand(collector, 0, []string{"a"}, 1, bedStrands, SeverityWarning)

	require.Len(t, collector.diagnostics, 1)
	assert.Equal(t, "Invalid strand 'x', expected one of: +, -, .", collector.diagnostics[0].Message)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "hint", SeverityHint.String())
}
