package biofmt_api

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/hts/bgzf"
)

// File extensions of the supported formats
var formatExtensions = map[string]FormatId{
	".vcf":      FormatVcf,
	".bed":      FormatBed,
	".bedpe":    FormatBedpe,
	".sam":      FormatSam,
	".gtf":      FormatGtf,
	".gff":      FormatGff3,
	".gff3":     FormatGff3,
	".paf":      FormatPaf,
	".psl":      FormatPsl,
	".wig":      FormatWig,
	".bedgraph": FormatBedGraph,
	".bg":       FormatBedGraph,
}

// isBgzipPath reports whether a file name carries the .gz suffix, in any case
func isBgzipPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// FormatFromPath derives the format from a file name, a trailing .gz is ignored
func FormatFromPath(path string) (FormatId, error) {
	name := strings.ToLower(filepath.Base(path))
	if isBgzipPath(name) {
		name = name[:len(name)-len(".gz")]
	}
	if format, ok := formatExtensions[filepath.Ext(name)]; ok {
		return format, nil
	}
	return "", fmt.Errorf("%w: can't derive a format from '%s'", ErrUnknownFormat, path)
}

// ParseFormatId checks a format given by name
func ParseFormatId(name string) (FormatId, error) {
	format := FormatId(strings.ToLower(name))
	if !HasValidator(format) {
		return "", fmt.Errorf("%w '%s'", ErrUnknownFormat, name)
	}
	return format, nil
}

// ReadDocument reads the text of a plain or BGZF compressed file
func ReadDocument(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if isBgzipPath(path) {
		return readBgzip(file)
	}
	return readPlain(file)
}

func readBgzip(input io.Reader) (string, error) {
	bgReader, err := bgzf.NewReader(input, 1)
	if err != nil {
		return "", fmt.Errorf("failed to open the BGZF stream: %w", err)
	}
	defer bgReader.Close()

	var text strings.Builder
	for {
		b, err := readBgzipLine(bgReader)
		text.Write(b)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return text.String(), nil
}

// readBgzipLine reads a line from a bgzip file, the newline included
func readBgzipLine(r *bgzf.Reader) ([]byte, error) {
	var (
		data []byte
		b    byte
		err  error
	)
	for {
		b, err = r.ReadByte()
		if err != nil {
			break
		}
		data = append(data, b)
		if b == '\n' {
			break
		}
	}
	return data, err
}

func readPlain(input io.Reader) (string, error) {
	content, err := io.ReadAll(input)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
