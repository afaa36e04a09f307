package biofmt_api

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/biogo/hts/bgzf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBgzip(t *testing.T, path string, content string) {
	t.Helper()
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	writer := bgzf.NewWriter(file, 1)
	_, err = writer.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
}

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "calls.vcf")
	require.NoError(t, os.WriteFile(plain, []byte(exampleVcf), 0o644))
	text, err := ReadDocument(plain)
	require.NoError(t, err)
	assert.Equal(t, exampleVcf, text)

	compressed := filepath.Join(dir, "calls.vcf.gz")
	writeBgzip(t, compressed, exampleVcf)
	text, err = ReadDocument(compressed)
	require.NoError(t, err)
	assert.Equal(t, exampleVcf, text)

	upper := filepath.Join(dir, "calls.VCF.GZ")
	writeBgzip(t, upper, exampleVcf)
	format, err := FormatFromPath(upper)
	require.NoError(t, err)
	assert.Equal(t, FormatVcf, format)
	text, err = ReadDocument(upper)
	require.NoError(t, err)
	assert.Equal(t, exampleVcf, text)

	_, err = ReadDocument(filepath.Join(dir, "missing.vcf"))
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]FormatId{
		"calls.vcf":         FormatVcf,
		"calls.VCF.gz":      FormatVcf,
		"peaks.bed":         FormatBed,
		"pairs.bedpe":       FormatBedpe,
		"reads.sam":         FormatSam,
		"genes.gtf":         FormatGtf,
		"genes.gff":         FormatGff3,
		"dir/genes.gff3.gz": FormatGff3,
		"aln.paf":           FormatPaf,
		"aln.psl":           FormatPsl,
		"signal.wig":        FormatWig,
		"signal.bedGraph":   FormatBedGraph,
		"signal.bg":         FormatBedGraph,
	}
	for path, expected := range tests {
		format, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, expected, format, path)
	}

	_, err := FormatFromPath("reads.fastq")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseFormatId(t *testing.T) {
	format, err := ParseFormatId("GFF3")
	require.NoError(t, err)
	assert.Equal(t, FormatGff3, format)

	_, err = ParseFormatId("fasta")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
