package biofmt_api

import (
	"fmt"
	"strings"
)

// Lines that carry display settings instead of data in UCSC track files
var trackPrefixes = []string{"track", "browser"}

var (
	bedStrands    = []string{"+", "-", "."}
	gtfStrands    = []string{"+", "-", "."}
	gff3Strands   = []string{"+", "-", ".", "?"}
	frames        = []string{"0", "1", "2", "."}
	pafStrands    = []string{"+", "-"}
	pslStrands    = []string{"+", "-", "++", "+-", "-+", "--"}
	pslSkipPrefix = []string{"psLayout", "match", "---"}
)

const startBeforeEnd = "Start position must be less than end position"

// tooFewColumns reports a line with less than the required amount of columns
func tooFewColumns(v *validation, index int, line string, columns []string, format string, required int) bool {
	if len(columns) >= required {
		return false
	}
	message := fmt.Sprintf("%s lines require at least %d columns, found %d", format, required, len(columns))
	v.out.add(LineDiagnostic(index, line, message, SeverityError))
	return true
}

func validateBed(v *validation) {
	v.each(0, trackPrefixes, func(index int, line string, columns []string) {
		if tooFewColumns(v, index, line, columns, "BED", 3) {
			return
		}
		validateNumericColumns(v.out, index, columns, []numericColumn{
			{Index: 1, Name: "Start"},
			{Index: 2, Name: "End"},
		})
		validateCoordinatePair(v.out, index, line, columns, coordinatePair{
			Start:    1,
			End:      2,
			Message:  startBeforeEnd,
			Severity: SeverityError,
		})
		validateStrand(v.out, index, columns, 5, bedStrands, SeverityWarning)
	})
}

func validateBedpe(v *validation) {
	v.each(0, trackPrefixes, func(index int, line string, columns []string) {
		if tooFewColumns(v, index, line, columns, "BEDPE", 6) {
			return
		}
		validateNumericColumns(v.out, index, columns, []numericColumn{
			{Index: 1, Name: "Start1"},
			{Index: 2, Name: "End1"},
			{Index: 4, Name: "Start2"},
			{Index: 5, Name: "End2"},
		})
		validateCoordinatePair(v.out, index, line, columns, coordinatePair{
			Start:      1,
			End:        2,
			AllowEqual: true,
			Message:    "End1 must not be less than Start1",
			Severity:   SeverityError,
		})
		validateCoordinatePair(v.out, index, line, columns, coordinatePair{
			Start:      4,
			End:        5,
			AllowEqual: true,
			Message:    "End2 must not be less than Start2",
			Severity:   SeverityError,
		})
		validateStrand(v.out, index, columns, 8, bedStrands, SeverityWarning)
		validateStrand(v.out, index, columns, 9, bedStrands, SeverityWarning)
	})
}

func validateSam(v *validation) {
	v.each(0, []string{"@"}, func(index int, line string, columns []string) {
		if tooFewColumns(v, index, line, columns, "SAM", 11) {
			return
		}
		validateNumericColumns(v.out, index, columns, []numericColumn{
			{Index: 1, Name: "FLAG"},
			{Index: 3, Name: "POS"},
		})
		mapq, ok := parseInteger(columns[4])
		switch {
		case !ok:
			v.out.add(ColumnDiagnostic(index, columns, 4, "MAPQ must be an integer", SeverityError))
		case mapq < 0 || mapq > 255:
			v.out.add(ColumnDiagnostic(index, columns, 4, "MAPQ should be between 0 and 255", SeverityWarning))
		}
	})
}

func validateGtf(v *validation) {
	v.each(0, trackPrefixes, func(index int, line string, columns []string) {
		if !validateFeatureLine(v, index, line, columns, "GTF", gtfStrands, "frame") {
			return
		}
		if attributes := columns[8]; attributes != "." && !strings.ContainsRune(attributes, '"') {
			v.out.add(ColumnDiagnostic(index, columns, 8, "GTF attributes should be written as key \"value\"; pairs", SeverityWarning))
		}
	})
}

func validateGff3(v *validation) {
	for index := 0; index < v.limit; index++ {
		if v.lines[index] == "##FASTA" {
			v.limit = index
			break
		}
	}
	v.each(0, trackPrefixes, func(index int, line string, columns []string) {
		if !validateFeatureLine(v, index, line, columns, "GFF3", gff3Strands, "phase") {
			return
		}
		if attributes := columns[8]; attributes != "." && !strings.ContainsRune(attributes, '=') {
			v.out.add(ColumnDiagnostic(index, columns, 8, "GFF3 attributes should be written as key=value pairs", SeverityWarning))
		}
	})
}

// validateFeatureLine runs the checks GTF and GFF3 have in common.
// Returns false when the line has too few columns for further checks.
func validateFeatureLine(v *validation, index int, line string, columns []string, format string, strands []string, frameName string) bool {
	if tooFewColumns(v, index, line, columns, format, 9) {
		return false
	}
	validateNumericColumns(v.out, index, columns, []numericColumn{
		{Index: 3, Name: "Start"},
		{Index: 4, Name: "End"},
	})
	validateCoordinatePair(v.out, index, line, columns, coordinatePair{
		Start:      3,
		End:        4,
		AllowEqual: true,
		Message:    "Start position must not be greater than end position",
		Severity:   SeverityError,
	})
	validateStrand(v.out, index, columns, 6, strands, SeverityWarning)
	validateEnumColumn(v.out, index, columns, 7, frameName, frames, SeverityError)
	return true
}

func validatePaf(v *validation) {
	v.each(0, nil, func(index int, line string, columns []string) {
		if tooFewColumns(v, index, line, columns, "PAF", 12) {
			return
		}
		validateNumericColumns(v.out, index, columns, []numericColumn{
			{Index: 1, Name: "Query length"},
			{Index: 2, Name: "Query start"},
			{Index: 3, Name: "Query end"},
			{Index: 6, Name: "Target length"},
			{Index: 7, Name: "Target start"},
			{Index: 8, Name: "Target end"},
			{Index: 9, Name: "Residue matches"},
			{Index: 10, Name: "Alignment block length"},
			{Index: 11, Name: "Mapping quality"},
		})
		validateCoordinatePair(v.out, index, line, columns, coordinatePair{
			Start:    2,
			End:      3,
			Message:  "Query start must be less than query end",
			Severity: SeverityWarning,
		})
		validateCoordinatePair(v.out, index, line, columns, coordinatePair{
			Start:    7,
			End:      8,
			Message:  "Target start must be less than target end",
			Severity: SeverityWarning,
		})
		validateStrand(v.out, index, columns, 4, pafStrands, SeverityWarning)
	})
}

func validatePsl(v *validation) {
	v.each(0, pslSkipPrefix, func(index int, line string, columns []string) {
		if tooFewColumns(v, index, line, columns, "PSL", 21) {
			return
		}
		validateNumericColumns(v.out, index, columns, []numericColumn{
			{Index: 0, Name: "matches"},
			{Index: 1, Name: "misMatches"},
			{Index: 2, Name: "repMatches"},
			{Index: 3, Name: "nCount"},
			{Index: 4, Name: "qNumInsert"},
			{Index: 5, Name: "qBaseInsert"},
			{Index: 6, Name: "tNumInsert"},
			{Index: 7, Name: "tBaseInsert"},
			{Index: 10, Name: "qSize"},
			{Index: 11, Name: "qStart"},
			{Index: 12, Name: "qEnd"},
			{Index: 14, Name: "tSize"},
			{Index: 15, Name: "tStart"},
			{Index: 16, Name: "tEnd"},
			{Index: 17, Name: "blockCount"},
		})
		validateCoordinatePair(v.out, index, line, columns, coordinatePair{
			Start:    11,
			End:      12,
			Message:  "qStart must be less than qEnd",
			Severity: SeverityWarning,
		})
		validateCoordinatePair(v.out, index, line, columns, coordinatePair{
			Start:    15,
			End:      16,
			Message:  "tStart must be less than tEnd",
			Severity: SeverityWarning,
		})
		validateStrand(v.out, index, columns, 8, pslStrands, SeverityWarning)
	})
}

func validateBedGraph(v *validation) {
	v.each(0, trackPrefixes, func(index int, line string, columns []string) {
		if tooFewColumns(v, index, line, columns, "bedGraph", 4) {
			return
		}
		validateNumericColumns(v.out, index, columns, []numericColumn{
			{Index: 1, Name: "Start"},
			{Index: 2, Name: "End"},
		})
		validateCoordinatePair(v.out, index, line, columns, coordinatePair{
			Start:    1,
			End:      2,
			Message:  startBeforeEnd,
			Severity: SeverityError,
		})
		if !isNumeric(columns[3]) {
			v.out.add(ColumnDiagnostic(index, columns, 3, "Value must be numeric", SeverityError))
		}
	})
}
