package biofmt_api

// The struct representing the header of a VCF document in a parseable format
type Header struct {
	// The value of the ##fileformat line, empty when the line is absent
	FileFormat string

	// Object containing the INFO fields with their ID, Number, Type and Description
	// in the order they were declared
	Info HeaderCatalog

	// Object containing the FORMAT fields with their ID, Number, Type and Description
	// in the order they were declared
	Format HeaderCatalog

	// Object containing the FILTER fields with their ID and Description
	Filter HeaderCatalog

	// Object containing the ALT fields with their ID and Description
	Alt HeaderCatalog

	// Object containing the contigs with their ID and Length
	Contig HeaderCatalog

	// List of all other header lines that aren't structured declarations
	Other []string

	// List of all samples in the VCF file, empty when there are none
	Samples []string

	// The columns of the #CHROM line
	Columns []string

	// The line index of the #CHROM line, -1 when the document doesn't have one
	ColumnHeaderLine int

	// The line index of the first data row
	// This points past the end of the document when there are no data rows
	HeaderEndLine int
}

// A struct representing a structured header line in the VCF file
type HeaderLineIdNumberTypeDescription struct {
	// The ID of the header line
	Id string

	// The number of values in the header line
	// Can be any integer, "A", "G", "R" or "."
	// A = one value per alternate allele
	// G = one value per possible genotype
	// R = one value per possible allele
	// . = the number varies, is unknown or is unbounded
	Number string

	// The type of the header line
	// Can be "Integer", "Float", "Flag", "String" or "Character"
	Type string

	// The description of the header line
	Description string

	// The length of a contig, 0 for other declarations or when unknown
	Length int64

	// The line index this declaration was read from
	Line int

	// All key/value pairs of the declaration
	Fields FieldRecord
}

// An ordered collection of header declarations keyed by their ID
type HeaderCatalog struct {
	ids   []string
	lines map[string]HeaderLineIdNumberTypeDescription
}

// Get returns the declaration with the given ID
func (catalog *HeaderCatalog) Get(id string) (HeaderLineIdNumberTypeDescription, bool) {
	line, ok := catalog.lines[id]
	return line, ok
}

// Has reports whether a declaration with the given ID exists
func (catalog *HeaderCatalog) Has(id string) bool {
	_, ok := catalog.lines[id]
	return ok
}

// Ids returns the declared IDs in declaration order
func (catalog *HeaderCatalog) Ids() []string {
	return append([]string(nil), catalog.ids...)
}

// Lines returns the declarations in declaration order
func (catalog *HeaderCatalog) Lines() []HeaderLineIdNumberTypeDescription {
	lines := make([]HeaderLineIdNumberTypeDescription, 0, len(catalog.ids))
	for _, id := range catalog.ids {
		lines = append(lines, catalog.lines[id])
	}
	return lines
}

// Len returns the amount of declarations
func (catalog *HeaderCatalog) Len() int {
	return len(catalog.ids)
}

// A redeclared ID keeps its first position but takes the new value
func (catalog *HeaderCatalog) set(line HeaderLineIdNumberTypeDescription) {
	if catalog.lines == nil {
		catalog.lines = map[string]HeaderLineIdNumberTypeDescription{}
	}
	if _, ok := catalog.lines[line.Id]; !ok {
		catalog.ids = append(catalog.ids, line.Id)
	}
	catalog.lines[line.Id] = line
}

// The key/value pairs of one structured header line, in the order they were written
type FieldRecord struct {
	Keys   []string
	Values map[string]string
}

// Get returns the raw value for a key
func (record FieldRecord) Get(key string) (string, bool) {
	value, ok := record.Values[key]
	return value, ok
}

// Len returns the amount of keys in the record
func (record FieldRecord) Len() int {
	return len(record.Keys)
}

func (record *FieldRecord) set(key string, value string) {
	if record.Values == nil {
		record.Values = map[string]string{}
	}
	if _, ok := record.Values[key]; !ok {
		record.Keys = append(record.Keys, key)
	}
	record.Values[key] = value
}

// The identity of a document as handed out by the editor
type DocumentId string

// A document as seen by the engine
type Document struct {
	// The identity of the document
	Id DocumentId

	// The format of the document
	Format FormatId

	// Increases on every content change
	Revision int

	// The full text of the document
	Text string
}

//
// Settings structs
//

// The struct representing the settings file
// The settings file is a YAML file
type Settings struct {
	Validation ValidationSettings `yaml:"validation"`
	Lsp        LspSettings        `yaml:"lsp"`
}

// Settings for the validators
type ValidationSettings struct {
	// One of off, basic or strict
	Level ValidationLevel `yaml:"level"`

	// Diagnostics beyond this count are dropped, the earliest found are kept
	MaxDiagnostics *int `yaml:"maxDiagnostics"`
}

// Settings shared with the editor integration
type LspSettings struct {
	// The amount of lines validated per document
	// For VCF documents this is counted from the end of the header
	ViewportBufferLines *int `yaml:"viewportBufferLines"`
}
