package biofmt_api

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
	cli "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"
)

// The diagnostics of one file
type FileDiagnostics struct {
	Path        string       `json:"path"`
	Format      FormatId     `json:"format"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// SettingsFromFlags loads the settings file given by --config and applies the flag overrides
func SettingsFromFlags(Cctx *cli.Context) (*Settings, error) {
	settings := DefaultSettings()
	if path := Cctx.String("config"); path != "" {
		loaded, err := LoadSettings(path)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	if Cctx.IsSet("level") {
		settings = settings.WithLevel(ValidationLevel(Cctx.String("level")))
	}
	if Cctx.IsSet("max-diagnostics") {
		settings = settings.WithMaxDiagnostics(Cctx.Int("max-diagnostics"))
	}
	if Cctx.IsSet("viewport") {
		settings = settings.WithViewportBufferLines(Cctx.Int("viewport"))
	}
	if err := settings.Check(); err != nil {
		return nil, err
	}
	return settings, nil
}

func inputFormat(Cctx *cli.Context, path string) (FormatId, error) {
	if name := Cctx.String("format"); name != "" {
		return ParseFormatId(name)
	}
	return FormatFromPath(path)
}

// ValidateFile reads and validates one file in its own workspace
func ValidateFile(path string, format FormatId, settings *Settings, logger zerolog.Logger) (*FileDiagnostics, error) {
	text, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	workspace := NewWorkspace(settings, logger)
	id := DocumentId(path)
	workspace.Open(id, format, text)
	defer workspace.Close(id)

	diagnostics, err := workspace.Validate(id)
	if err != nil {
		return nil, err
	}
	return &FileDiagnostics{Path: path, Format: format, Diagnostics: diagnostics}, nil
}

// Validate all input files concurrently and write their diagnostics
func ExecuteValidate(Cctx *cli.Context, settings *Settings, logger zerolog.Logger) error {
	files := Cctx.Args().Slice()
	if len(files) == 0 {
		return cli.Exit("No input files given", 2)
	}

	results := make([]*FileDiagnostics, len(files))
	p := pool.New().
		WithMaxGoroutines(min(max(runtime.NumCPU(), 1), len(files))).
		WithContext(Cctx.Context)
	for index, file := range files {
		index, file := index, file
		p.Go(func(ctx context.Context) error {
			format, err := inputFormat(Cctx, file)
			if err != nil {
				return err
			}
			result, err := ValidateFile(file, format, settings, logger)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			results[index] = result
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	if Cctx.Bool("json") {
		encoder := json.NewEncoder(Cctx.App.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return cli.Exit(err.Error(), 2)
		}
	} else {
		for _, result := range results {
			writeDiagnostics(Cctx, result)
		}
	}

	errorCount := 0
	for _, result := range results {
		for _, diagnostic := range result.Diagnostics {
			if diagnostic.Severity == SeverityError {
				errorCount++
			}
		}
	}
	if errorCount > 0 {
		return cli.Exit(fmt.Sprintf("%d error(s) found", errorCount), 1)
	}
	return nil
}

// Write the diagnostics in a compiler-like one line per diagnostic format
func writeDiagnostics(Cctx *cli.Context, result *FileDiagnostics) {
	for _, diagnostic := range result.Diagnostics {
		fmt.Fprintf(
			Cctx.App.Writer,
			"%s:%d:%d: %s: %s [%s]\n",
			result.Path,
			diagnostic.Range.Start.Line+1,
			diagnostic.Range.Start.Character+1,
			diagnostic.Severity,
			diagnostic.Message,
			diagnostic.Source,
		)
	}
}

// The YAML representation of a parsed header
type headerDocument struct {
	FileFormat    string              `yaml:"fileformat,omitempty"`
	Info          []headerDeclaration `yaml:"info,omitempty"`
	Format        []headerDeclaration `yaml:"format,omitempty"`
	Filter        []headerDeclaration `yaml:"filter,omitempty"`
	Alt           []headerDeclaration `yaml:"alt,omitempty"`
	Contig        []headerDeclaration `yaml:"contig,omitempty"`
	Samples       []string            `yaml:"samples"`
	HeaderEndLine int                 `yaml:"headerEndLine"`
}

type headerDeclaration struct {
	Id          string `yaml:"id"`
	Number      string `yaml:"number,omitempty"`
	Type        string `yaml:"type,omitempty"`
	Description string `yaml:"description,omitempty"`
	Length      int64  `yaml:"length,omitempty"`
	Line        int    `yaml:"line"`
}

func toHeaderDeclarations(catalog *HeaderCatalog, typed bool) []headerDeclaration {
	declarations := []headerDeclaration{}
	for _, line := range catalog.Lines() {
		declaration := headerDeclaration{
			Id:          line.Id,
			Description: line.Description,
			Length:      line.Length,
			Line:        line.Line,
		}
		if typed {
			declaration.Number = line.Number
			declaration.Type = line.Type
		}
		declarations = append(declarations, declaration)
	}
	return declarations
}

// Write the parsed header of a VCF file as YAML
func ExecuteHeader(Cctx *cli.Context, logger zerolog.Logger) error {
	path := Cctx.Args().First()
	if path == "" {
		return cli.Exit("No input file given", 2)
	}
	text, err := ReadDocument(path)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	workspace := NewWorkspace(nil, logger)
	workspace.Open(DocumentId(path), FormatVcf, text)
	header, err := workspace.Header(DocumentId(path))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	out, err := yaml.Marshal(headerDocument{
		FileFormat:    header.FileFormat,
		Info:          toHeaderDeclarations(&header.Info, true),
		Format:        toHeaderDeclarations(&header.Format, true),
		Filter:        toHeaderDeclarations(&header.Filter, false),
		Alt:           toHeaderDeclarations(&header.Alt, false),
		Contig:        toHeaderDeclarations(&header.Contig, false),
		Samples:       header.Samples,
		HeaderEndLine: header.HeaderEndLine,
	})
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	_, err = Cctx.App.Writer.Write(out)
	return err
}

// Write the decoded FORMAT values of every sample on one data line
func ExecuteDecode(Cctx *cli.Context, logger zerolog.Logger) error {
	path := Cctx.Args().First()
	if path == "" {
		return cli.Exit("No input file given", 2)
	}
	text, err := ReadDocument(path)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	workspace := NewWorkspace(nil, logger)
	workspace.Open(DocumentId(path), FormatVcf, text)
	samples, err := workspace.DecodeSamples(DocumentId(path), Cctx.Int("line")-1)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if name := Cctx.String("sample"); name != "" {
		header, err := workspace.Header(DocumentId(path))
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		position := header.SampleIndex(name)
		if position < 0 || position >= len(samples) {
			return cli.Exit(fmt.Sprintf("Sample '%s' not found on line %d", name, Cctx.Int("line")), 1)
		}
		samples = samples[position : position+1]
	}

	for index, sample := range samples {
		name := sample.Sample
		if name == "" {
			name = fmt.Sprintf("sample %d", index+1)
		}
		fmt.Fprintln(Cctx.App.Writer, name)
		for _, field := range sample.Fields {
			if !Cctx.Bool("summary") {
				fmt.Fprintf(Cctx.App.Writer, "  %s\t%s\n", field.Key, field.Value.RenderDisplay())
				continue
			}
			for _, item := range field.Value.Summarize() {
				fmt.Fprintf(Cctx.App.Writer, "  %s\t%s\t%s\n", item.Label, item.Value, item.Tooltip)
			}
		}
	}
	return nil
}

// Validate the input files and validate them again on every write
func ExecuteWatch(Cctx *cli.Context, settings *Settings, logger zerolog.Logger) error {
	files := Cctx.Args().Slice()
	if len(files) == 0 {
		return cli.Exit("No input files given", 2)
	}

	watcher, err := NewWatcher(files)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer watcher.Stop()

	workspace := NewWorkspace(settings, logger)
	for path := range watcher.paths {
		format, err := inputFormat(Cctx, path)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		text, err := ReadDocument(path)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		workspace.Open(DocumentId(path), format, text)
		watchReport(Cctx, workspace, path, logger)
	}

	if err := watcher.Start(); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	logger.Info().
		Int("files", len(files)).
		Str("level", string(workspace.Settings().Validation.Level)).
		Msg("watching for changes")

	for {
		select {
		case <-Cctx.Context.Done():
			return nil
		case path := <-watcher.Events():
			text, err := ReadDocument(path)
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("failed to read changed file")
				continue
			}
			if _, err := workspace.Change(DocumentId(path), text); err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("failed to update document")
				continue
			}
			watchReport(Cctx, workspace, path, logger)
		case err := <-watcher.Errors():
			logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

func watchReport(Cctx *cli.Context, workspace *Workspace, path string, logger zerolog.Logger) {
	document, _ := workspace.Document(DocumentId(path))
	diagnostics, err := workspace.Validate(DocumentId(path))
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("failed to validate")
		return
	}
	logger.Info().
		Str("path", path).
		Int("revision", document.Revision).
		Int("diagnostics", len(diagnostics)).
		Msg("validated")
	writeDiagnostics(Cctx, &FileDiagnostics{Path: path, Format: document.Format, Diagnostics: diagnostics})
}
