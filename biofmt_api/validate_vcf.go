package biofmt_api

import (
	"fmt"
	"strings"
)

// The minimum amount of columns of VCF header and data lines (CHROM to INFO)
const minVcfColumns = 8

// VCF column indexes
const (
	vcfPos    = 1
	vcfRef    = 3
	vcfAlt    = 4
	vcfQual   = 5
	vcfInfo   = 7
	vcfFormat = 8
)

func validateVcf(v *validation) {
	header := v.headers.Get(v.document.Id, v.document.Revision, v.document.Text)
	v.limit = min(len(v.lines), v.viewport+header.HeaderEndLine)

	validateVcfHeader(v, header)

	expectedColumns := len(header.Columns)
	v.each(header.HeaderEndLine, nil, func(index int, line string, columns []string) {
		if expectedColumns >= minVcfColumns && len(columns) != expectedColumns {
			v.out.add(LineDiagnostic(index, line, fmt.Sprintf("Expected %d columns, found %d", expectedColumns, len(columns)), SeverityError))
			return
		}
		if len(columns) < minVcfColumns {
			v.out.add(LineDiagnostic(index, line, fmt.Sprintf("Expected at least %d columns, found %d", minVcfColumns, len(columns)), SeverityError))
			return
		}

		validateNumericColumns(v.out, index, columns, []numericColumn{{Index: vcfPos, Name: "POS"}})

		if qual := columns[vcfQual]; qual != "." && !isNumeric(qual) {
			v.out.add(ColumnDiagnostic(index, columns, vcfQual, "QUAL must be numeric or '.'", SeverityError))
		}

		if v.strict {
			validateVcfInfoKeys(v, header, index, columns)
			validateVcfFormatKeys(v, header, index, columns)
		}
	})
}

// The header lines are always checked, the viewport only bounds the data lines
func validateVcfHeader(v *validation, header *Header) {
	if len(v.lines) == 0 {
		return
	}
	if first := v.lines[0]; !strings.HasPrefix(first, fileFormatPrefix) {
		v.out.add(LineDiagnostic(0, first, "VCF files should start with a ##fileformat line", SeverityWarning))
	}
	if header.ColumnHeaderLine >= 0 && len(header.Columns) < minVcfColumns {
		line := v.lines[header.ColumnHeaderLine]
		message := fmt.Sprintf("VCF header line must have at least %d columns, found %d", minVcfColumns, len(header.Columns))
		v.out.add(LineDiagnostic(header.ColumnHeaderLine, line, message, SeverityError))
	}
}

func validateVcfInfoKeys(v *validation, header *Header, index int, columns []string) {
	info := columns[vcfInfo]
	if info == "." || info == "" {
		return
	}
	for _, field := range strings.Split(info, ";") {
		key, _, _ := strings.Cut(field, "=")
		if key == "" || header.Info.Has(key) {
			continue
		}
		v.out.add(ColumnDiagnostic(index, columns, vcfInfo, fmt.Sprintf("INFO field '%s' is not defined in the header", key), SeverityWarning))
	}
}

// Checks the FORMAT keys against the header and the genotype allele indexes against the ALT alleles
func validateVcfFormatKeys(v *validation, header *Header, index int, columns []string) {
	if len(columns) <= vcfFormat || columns[vcfFormat] == "." {
		return
	}
	keys := strings.Split(columns[vcfFormat], ":")
	for _, key := range keys {
		if key == "" || header.Format.Has(key) {
			continue
		}
		v.out.add(ColumnDiagnostic(index, columns, vcfFormat, fmt.Sprintf("FORMAT field '%s' is not defined in the header", key), SeverityWarning))
	}

	gtIndex := -1
	for position, key := range keys {
		if key == "GT" {
			gtIndex = position
			break
		}
	}
	if gtIndex < 0 {
		return
	}

	context := NewFormatContext(columns[vcfRef], columns[vcfAlt])
	for column := vcfFormat + 1; column < len(columns); column++ {
		values := strings.Split(columns[column], ":")
		if gtIndex >= len(values) {
			continue
		}
		genotype := DecodeFormatValue("GT", values[gtIndex], nil, context).(*GenotypeValue)
		if allele, ok := genotype.maxAllele(); ok && allele >= int64(context.NAlleles()) {
			message := fmt.Sprintf("Genotype allele %d exceeds the %d alleles of this record", allele, context.NAlleles())
			v.out.add(ColumnDiagnostic(index, columns, column, message, SeverityWarning))
		}
	}
}
