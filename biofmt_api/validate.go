package biofmt_api

import (
	"strings"

	"github.com/rs/zerolog"
)

// The identifier of a tab-delimited file format
type FormatId string

const (
	FormatVcf      FormatId = "vcf"
	FormatBed      FormatId = "bed"
	FormatBedpe    FormatId = "bedpe"
	FormatSam      FormatId = "sam"
	FormatGtf      FormatId = "gtf"
	FormatGff3     FormatId = "gff3"
	FormatPaf      FormatId = "paf"
	FormatPsl      FormatId = "psl"
	FormatWig      FormatId = "wig"
	FormatBedGraph FormatId = "bedgraph"
)

// ValidationLevel controls which rules run
type ValidationLevel string

const (
	LevelOff    ValidationLevel = "off"
	LevelBasic  ValidationLevel = "basic"
	LevelStrict ValidationLevel = "strict"
)

// Everything a validator needs for one pass over a document
type validation struct {
	document *Document
	lines    []string
	limit    int
	viewport int
	strict   bool
	headers  *HeaderCache
	out      *diagnosticCollector
}

type validatorFunc func(v *validation)

// The validator of every supported format. Formats without an entry aren't validated.
var validators = map[FormatId]validatorFunc{
	FormatVcf:      validateVcf,
	FormatBed:      validateBed,
	FormatBedpe:    validateBedpe,
	FormatSam:      validateSam,
	FormatGtf:      validateGtf,
	FormatGff3:     validateGff3,
	FormatPaf:      validatePaf,
	FormatPsl:      validatePsl,
	FormatWig:      validateWig,
	FormatBedGraph: validateBedGraph,
}

// HasValidator reports whether documents of the format get validated
func HasValidator(format FormatId) bool {
	_, ok := validators[format]
	return ok
}

// Validate runs the validator of the document's format and returns at most
// settings.MaxDiagnostics() diagnostics in the order they were found.
// The header cache is only consulted for VCF documents, nil settings take the defaults.
func Validate(document *Document, settings *Settings, headers *HeaderCache) []Diagnostic {
	if settings == nil {
		settings = DefaultSettings()
	}
	if headers == nil {
		headers = NewHeaderCache(zerolog.Nop())
	}

	validator, ok := validators[document.Format]
	if !ok || settings.Validation.Level == LevelOff {
		return []Diagnostic{}
	}

	lines := splitLines(document.Text)
	v := &validation{
		document: document,
		lines:    lines,
		limit:    min(len(lines), settings.ViewportBufferLines()),
		viewport: settings.ViewportBufferLines(),
		strict:   settings.Validation.Level == LevelStrict,
		headers:  headers,
		out:      newDiagnosticCollector(settings.MaxDiagnostics()),
	}
	if v.out.full() {
		return v.out.diagnostics
	}
	validator(v)
	return v.out.diagnostics
}

// each calls fn for every line that isn't skipped, until the line limit or the
// diagnostic maximum is reached
func (v *validation) each(start int, skipPrefixes []string, fn func(index int, line string, columns []string)) {
	for index := start; index < v.limit; index++ {
		if v.out.full() {
			return
		}
		line := v.lines[index]
		if ShouldSkipLine(line, skipPrefixes...) {
			continue
		}
		fn(index, line, strings.Split(line, "\t"))
	}
}
