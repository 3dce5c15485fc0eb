package ocr2pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eesb99/ocr2pdf/pkg/config"
	"github.com/eesb99/ocr2pdf/pkg/textpdf"
)

// minimalPDF builds a one-page text-only PDF with a correct xref table.
func minimalPDF() []byte {
	content := []byte("BT /F1 12 Tf 72 720 Td (hello) Tj ET")
	objects := []struct {
		body   string
		stream []byte
	}{
		{"<< /Type /Catalog /Pages 2 0 R >>", nil},
		{"<< /Type /Pages /Kids [3 0 R] /Count 1 >>", nil},
		{"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
			"/Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>", nil},
		{"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>", nil},
		{fmt.Sprintf("<< /Length %d >>", len(content)), content},
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\n", i+1, obj.body)
		if obj.stream != nil {
			buf.WriteString("stream\n")
			buf.Write(obj.stream)
			buf.WriteString("\nendstream\n")
		}
		buf.WriteString("endobj\n")
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xref)
	return buf.Bytes()
}

// testConverter builds a converter without requiring the OCR engine;
// callers must not exercise recognition paths.
func testConverter() *Converter {
	settings := config.Default()
	return &Converter{
		assembler: textpdf.NewAssembler(settings.PDF, zerolog.Nop()),
		settings:  settings,
		logger:    zerolog.Nop(),
	}
}

func TestEnsurePDFSuffix(t *testing.T) {
	assert.Equal(t, "out.pdf", EnsurePDFSuffix("out.pdf"))
	assert.Equal(t, "out.PDF", EnsurePDFSuffix("out.PDF"))
	assert.Equal(t, "out.pdf", EnsurePDFSuffix("out"))
	assert.Equal(t, "out.txt.pdf", EnsurePDFSuffix("out.txt"))
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "scan_digital.pdf"), OutputName("in/scan.pdf", "out"))
	assert.Equal(t, filepath.Join("out", "a.b_digital.pdf"), OutputName("a.b.pdf", "out"))
}

func TestCollectPDFs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	for _, name := range []string{"b.pdf", "a.pdf", "notes.txt", "sub/c.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	files, err := CollectPDFs(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join(dir, "a.pdf"), files[0])
	assert.Equal(t, filepath.Join(dir, "b.pdf"), files[1])
	assert.Equal(t, filepath.Join(sub, "c.pdf"), files[2])
}

func TestCollectPDFsSingleFile(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("x"), 0o644))

	files, err := CollectPDFs(pdf)
	require.NoError(t, err)
	assert.Equal(t, []string{pdf}, files)

	txt := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	files, err = CollectPDFs(txt)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestProcessBatchIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	valid1 := filepath.Join(dir, "one.pdf")
	valid2 := filepath.Join(dir, "two.pdf")
	corrupt := filepath.Join(dir, "broken.pdf")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(valid1, minimalPDF(), 0o644))
	require.NoError(t, os.WriteFile(valid2, minimalPDF(), 0o644))
	require.NoError(t, os.WriteFile(corrupt, []byte("%PDF-1.4 garbage"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("text"), 0o644))

	c := testConverter()
	report := c.ProcessBatch([]string{valid1, corrupt, other, valid2}, outDir, false)

	require.Len(t, report.Items, 4)
	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 1, report.Skipped())

	// The failure is recorded with its cause and does not halt the queue.
	assert.Equal(t, OutcomeFailed, report.Items[1].Outcome)
	assert.Error(t, report.Items[1].Err)
	assert.Equal(t, OutcomeSuccess, report.Items[3].Outcome)
	assert.FileExists(t, report.Items[3].Output)
}

func TestProcessBatchValidateOnly(t *testing.T) {
	dir := t.TempDir()
	scan := filepath.Join(dir, "scan.pdf")
	require.NoError(t, os.WriteFile(scan, minimalPDF(), 0o644))

	c := testConverter()
	report := c.ProcessBatch([]string{scan}, dir, true)

	require.Len(t, report.Items, 1)
	assert.Equal(t, OutcomeSuccess, report.Items[0].Outcome)
	assert.False(t, report.Items[0].Valid)
}

func TestFormInfoScanned(t *testing.T) {
	dir := t.TempDir()
	scan := filepath.Join(dir, "scan.pdf")
	require.NoError(t, os.WriteFile(scan, minimalPDF(), 0o644))

	c := testConverter()
	info, err := c.FormInfo(scan)
	require.NoError(t, err)
	assert.Equal(t, "scanned", info.FormType)
	assert.Equal(t, 1, info.PageCount)
}

func TestConvertDirNoInput(t *testing.T) {
	c := testConverter()
	err := c.ConvertDir(t.TempDir(), filepath.Join(t.TempDir(), "out.pdf"))
	assert.ErrorIs(t, err, ErrNoInputFound)
}
