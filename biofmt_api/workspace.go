package biofmt_api

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Workspace keeps the open documents and owns the header cache.
// Every operation runs to completion before the next one starts, a Workspace
// isn't safe for concurrent use.
type Workspace struct {
	documents map[DocumentId]*Document
	headers   *HeaderCache
	settings  *Settings
	logger    zerolog.Logger
}

// NewWorkspace creates a workspace without open documents
func NewWorkspace(settings *Settings, logger zerolog.Logger) *Workspace {
	if settings == nil {
		settings = DefaultSettings()
	}
	return &Workspace{
		documents: map[DocumentId]*Document{},
		headers:   NewHeaderCache(logger),
		settings:  settings,
		logger:    logger,
	}
}

// Settings returns the active settings
func (workspace *Workspace) Settings() *Settings {
	return workspace.settings
}

// SetSettings replaces the active settings
func (workspace *Workspace) SetSettings(settings *Settings) {
	workspace.settings = settings
}

// Open starts tracking a document at revision 1. Reopening a document resets it.
func (workspace *Workspace) Open(id DocumentId, format FormatId, text string) *Document {
	workspace.headers.Evict(id)
	document := &Document{Id: id, Format: format, Revision: 1, Text: text}
	workspace.documents[id] = document
	workspace.logger.Debug().Str("document", string(id)).Str("format", string(format)).Msg("opened document")
	return document
}

// Change replaces the text of an open document and bumps its revision
func (workspace *Workspace) Change(id DocumentId, text string) (*Document, error) {
	document, ok := workspace.documents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, id)
	}
	document.Text = text
	document.Revision++
	return document, nil
}

// ChangeAt replaces the text of an open document with an externally numbered revision
func (workspace *Workspace) ChangeAt(id DocumentId, revision int, text string) (*Document, error) {
	document, ok := workspace.documents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, id)
	}
	if revision <= document.Revision {
		return nil, fmt.Errorf("%w: %s is at %d, got %d", ErrStaleRevision, id, document.Revision, revision)
	}
	document.Text = text
	document.Revision = revision
	return document, nil
}

// Close stops tracking a document and drops its cached header
func (workspace *Workspace) Close(id DocumentId) {
	delete(workspace.documents, id)
	workspace.headers.Evict(id)
	workspace.logger.Debug().Str("document", string(id)).Msg("closed document")
}

// Document returns an open document
func (workspace *Workspace) Document(id DocumentId) (*Document, bool) {
	document, ok := workspace.documents[id]
	return document, ok
}

// Validate runs the validator of an open document
func (workspace *Workspace) Validate(id DocumentId) ([]Diagnostic, error) {
	document, ok := workspace.documents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, id)
	}
	diagnostics := Validate(document, workspace.settings, workspace.headers)
	workspace.logger.Debug().
		Str("document", string(id)).
		Int("revision", document.Revision).
		Int("diagnostics", len(diagnostics)).
		Msg("validated document")
	return diagnostics, nil
}

// Header returns the cached header of an open VCF document
func (workspace *Workspace) Header(id DocumentId) (*Header, error) {
	document, ok := workspace.documents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, id)
	}
	if document.Format != FormatVcf {
		return nil, fmt.Errorf("%w: %s has no VCF header", ErrUnknownFormat, document.Format)
	}
	return workspace.headers.Get(document.Id, document.Revision, document.Text), nil
}

// A decoded sample column of a VCF data line
type SampleValues struct {
	// The sample name from the header, empty when the header doesn't name it
	Sample string

	// The decoded values in FORMAT column order
	Fields []FormatField
}

// DecodeSamples decodes the FORMAT values of every sample on one VCF data line
func (workspace *Workspace) DecodeSamples(id DocumentId, lineIndex int) ([]SampleValues, error) {
	header, err := workspace.Header(id)
	if err != nil {
		return nil, err
	}
	document := workspace.documents[id]
	lines := splitLines(document.Text)
	if lineIndex < header.HeaderEndLine || lineIndex >= len(lines) || ShouldSkipLine(lines[lineIndex]) {
		return nil, fmt.Errorf("%w: line %d", ErrNoDataLine, lineIndex)
	}

	columns := strings.Split(lines[lineIndex], "\t")
	if len(columns) <= vcfFormat {
		return nil, fmt.Errorf("%w: line %d", ErrNoDataLine, lineIndex)
	}

	context := NewFormatContext(columns[vcfRef], columns[vcfAlt])
	samples := make([]SampleValues, 0, len(columns)-vcfFormat-1)
	for column := vcfFormat + 1; column < len(columns); column++ {
		sample := ""
		if position := column - vcfFormat - 1; position < len(header.Samples) {
			sample = header.Samples[position]
		}
		samples = append(samples, SampleValues{
			Sample: sample,
			Fields: DecodeSample(header, columns[vcfFormat], columns[column], context),
		})
	}
	return samples, nil
}
