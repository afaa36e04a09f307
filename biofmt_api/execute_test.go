package biofmt_api

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"
)

func runTestApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	settingsFlags := []cli.Flag{
		&cli.StringFlag{Name: "config"},
		&cli.StringFlag{Name: "level"},
		&cli.IntFlag{Name: "max-diagnostics"},
		&cli.IntFlag{Name: "viewport"},
		&cli.StringFlag{Name: "format"},
		&cli.BoolFlag{Name: "json"},
	}
	app := &cli.App{
		Name:           "biofmt",
		Writer:         &out,
		ErrWriter:      &out,
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:  "validate",
				Flags: settingsFlags,
				Action: func(Cctx *cli.Context) error {
					settings, err := SettingsFromFlags(Cctx)
					if err != nil {
						return err
					}
					return ExecuteValidate(Cctx, settings, zerolog.Nop())
				},
			},
			{
				Name: "header",
				Action: func(Cctx *cli.Context) error {
					return ExecuteHeader(Cctx, zerolog.Nop())
				},
			},
			{
				Name: "decode",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "line"},
					&cli.BoolFlag{Name: "summary"},
					&cli.StringFlag{Name: "sample"},
				},
				Action: func(Cctx *cli.Context) error {
					return ExecuteDecode(Cctx, zerolog.Nop())
				},
			},
		},
	}
	err := app.Run(append([]string{"biofmt"}, args...))
	return out.String(), err
}

func writeTestFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExecuteValidateText(t *testing.T) {
	bad := writeTestFile(t, "bad.bed", "chr1\t200\t100\n")
	good := writeTestFile(t, "good.bed", "chr1\t100\t200\n")

	out, err := runTestApp(t, "validate", bad, good)
	require.Error(t, err)
	exit, ok := err.(cli.ExitCoder)
	require.True(t, ok)
	assert.Equal(t, 1, exit.ExitCode())
	assert.Equal(t, bad+":1:1: error: Start position must be less than end position [biofmt]\n", out)

	out, err = runTestApp(t, "validate", good)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExecuteValidateJson(t *testing.T) {
	path := writeTestFile(t, "calls.txt", vcfHeader+"chr1\t100\t.\tA\tT\t50\tPASS\n")

	out, err := runTestApp(t, "validate", "--json", "--format", "vcf", path)
	require.Error(t, err)

	var results []FileDiagnostics
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, FormatVcf, results[0].Format)
	require.Len(t, results[0].Diagnostics, 1)
	assert.Equal(t, "Expected 8 columns, found 7", results[0].Diagnostics[0].Message)
	assert.Equal(t, "biofmt", results[0].Diagnostics[0].Source)
}

func TestExecuteValidateSettingsFlags(t *testing.T) {
	path := writeTestFile(t, "bad.bed", "chr1\t200\t100\nchr1\t300\t100\n")
	config := writeTestFile(t, "biofmt.yaml", "validation:\n  level: off\n")

	out, err := runTestApp(t, "validate", "--config", config, path)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = runTestApp(t, "validate", "--config", config, "--level", "basic", "--max-diagnostics", "1", path)
	require.Error(t, err)
	assert.Contains(t, out, ":1:1:")
	assert.NotContains(t, out, ":2:1:")

	_, err = runTestApp(t, "validate", "--level", "loud", path)
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestExecuteValidateUnknownFormat(t *testing.T) {
	path := writeTestFile(t, "reads.fastq", "@r1\nACGT\n")
	_, err := runTestApp(t, "validate", path)
	require.Error(t, err)
	exit, ok := err.(cli.ExitCoder)
	require.True(t, ok)
	assert.Equal(t, 2, exit.ExitCode())
}

func TestExecuteHeader(t *testing.T) {
	path := writeTestFile(t, "calls.vcf", exampleVcf)

	out, err := runTestApp(t, "header", path)
	require.NoError(t, err)

	var document headerDocument
	require.NoError(t, yaml.Unmarshal([]byte(out), &document))
	assert.Equal(t, "VCFv4.2", document.FileFormat)
	assert.Equal(t, []string{"NA001", "NA002"}, document.Samples)
	assert.Equal(t, 11, document.HeaderEndLine)
	require.Len(t, document.Info, 2)
	assert.Equal(t, "Flag", document.Info[1].Type)
	require.Len(t, document.Contig, 1)
	assert.Equal(t, int64(248956422), document.Contig[0].Length)
}

func TestExecuteDecode(t *testing.T) {
	path := writeTestFile(t, "calls.vcf", exampleVcf)

	out, err := runTestApp(t, "decode", "--line", "12", path)
	require.NoError(t, err)
	assert.Equal(t, "NA001\n  GT\t0/1 (A/T)\nNA002\n  GT\t1|1 (T|T)\n", out)

	out, err = runTestApp(t, "decode", "--line", "12", "--summary", path)
	require.NoError(t, err)
	assert.Contains(t, out, "  Zygosity\theterozygous\t")

	out, err = runTestApp(t, "decode", "--line", "12", "--sample", "NA002", path)
	require.NoError(t, err)
	assert.Equal(t, "NA002\n  GT\t1|1 (T|T)\n", out)

	_, err = runTestApp(t, "decode", "--line", "12", "--sample", "NA003", path)
	assert.Error(t, err)

	_, err = runTestApp(t, "decode", "--line", "1", path)
	assert.Error(t, err)
}
