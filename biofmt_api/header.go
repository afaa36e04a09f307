package biofmt_api

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Prefixes of the header lines that are parsed into the header model
const (
	fileFormatPrefix = "##fileformat="
	infoPrefix       = "##INFO=<"
	formatPrefix     = "##FORMAT=<"
	filterPrefix     = "##FILTER=<"
	altPrefix        = "##ALT=<"
	contigPrefix     = "##contig=<"
	columnPrefix     = "#CHROM"
)

// The amount of fixed columns in front of the sample columns (CHROM to FORMAT)
const fixedVcfColumns = 9

var typeCaser = cases.Title(language.English, cases.Compact)

// ParseStructuredField parses a structured header line like ##INFO=<ID=DP,Number=1,...>
// into its ordered key/value pairs. The prefix is the part up to and including the '<'.
// Returns ErrMalformedHeaderLine when there's nothing between the prefix and the last '>'.
func ParseStructuredField(line string, prefix string) (FieldRecord, error) {
	record := FieldRecord{}

	if !strings.HasPrefix(line, prefix) {
		return record, ErrMalformedHeaderLine
	}
	end := strings.LastIndex(line, ">")
	if end < len(prefix) {
		return record, ErrMalformedHeaderLine
	}
	content := line[len(prefix):end]
	if content == "" {
		return record, ErrMalformedHeaderLine
	}

	var word strings.Builder
	key := ""
	inQuotes := false
	for _, letter := range content {
		switch {
		case letter == '"':
			inQuotes = !inQuotes
			continue
		case letter == '=' && !inQuotes && key == "":
			key = strings.TrimSpace(word.String())
			word.Reset()
			continue
		case letter == ',' && !inQuotes:
			if key != "" {
				record.set(key, word.String())
			}
			key = ""
			word.Reset()
			continue
		}
		word.WriteRune(letter)
	}
	if key != "" {
		record.set(key, word.String())
	}

	return record, nil
}

// ParseHeader scans the leading '#' lines of a VCF document and builds its header model
func ParseHeader(text string) *Header {
	return parseHeaderLines(splitLines(text))
}

func parseHeaderLines(lines []string) *Header {
	header := newHeader()
	header.HeaderEndLine = len(lines)

	for index, line := range lines {
		if !strings.HasPrefix(line, "#") {
			header.HeaderEndLine = index
			break
		}
		if strings.HasPrefix(line, columnPrefix) {
			header.Columns = strings.Split(line, "\t")
			if len(header.Columns) > fixedVcfColumns {
				header.Samples = append(header.Samples, header.Columns[fixedVcfColumns:]...)
			}
			header.ColumnHeaderLine = index
			header.HeaderEndLine = index + 1
			break
		}
		header.parse(line, index)
	}

	return header
}

// Parse the header line and add it to the Header struct
func (header *Header) parse(line string, index int) {
	switch {
	case strings.HasPrefix(line, fileFormatPrefix):
		header.FileFormat = strings.TrimSpace(line[len(fileFormatPrefix):])
	case strings.HasPrefix(line, infoPrefix):
		header.declare(&header.Info, line, infoPrefix, index)
	case strings.HasPrefix(line, formatPrefix):
		header.declare(&header.Format, line, formatPrefix, index)
	case strings.HasPrefix(line, filterPrefix):
		header.declare(&header.Filter, line, filterPrefix, index)
	case strings.HasPrefix(line, altPrefix):
		header.declare(&header.Alt, line, altPrefix, index)
	case strings.HasPrefix(line, contigPrefix):
		header.declare(&header.Contig, line, contigPrefix, index)
	default:
		header.Other = append(header.Other, line)
	}
}

// Malformed declarations and declarations without an ID are skipped
func (header *Header) declare(catalog *HeaderCatalog, line string, prefix string, index int) {
	record, err := ParseStructuredField(line, prefix)
	if err != nil {
		return
	}
	id, ok := record.Get("ID")
	if !ok || id == "" {
		return
	}

	declaration := HeaderLineIdNumberTypeDescription{
		Id:     id,
		Number: ".",
		Type:   "String",
		Line:   index,
		Fields: record,
	}
	if number, ok := record.Get("Number"); ok && number != "" {
		declaration.Number = number
	}
	if headerType, ok := record.Get("Type"); ok && headerType != "" {
		declaration.Type = typeCaser.String(strings.ToLower(headerType))
	}
	if description, ok := record.Get("Description"); ok {
		declaration.Description = description
	}
	if length, ok := record.Get("length"); ok {
		if parsed, err := strconv.ParseInt(length, 10, 64); err == nil {
			declaration.Length = parsed
		}
	}
	catalog.set(declaration)
}

// SampleIndex returns the position of a sample in the sample columns, -1 when unknown
func (header *Header) SampleIndex(sample string) int {
	for index, name := range header.Samples {
		if name == sample {
			return index
		}
	}
	return -1
}

// Create a new header struct
func newHeader() *Header {
	return &Header{
		Other:            []string{},
		Samples:          []string{},
		ColumnHeaderLine: -1,
	}
}

// splitLines splits a document into lines the way an editor counts them.
// A trailing newline results in a final empty line, carriage returns are dropped.
func splitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	lines := strings.Split(text, "\n")
	for index, line := range lines {
		lines[index] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
