package textpdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eesb99/ocr2pdf/pkg/config"
)

func testAssembler() *Assembler {
	a := NewAssembler(config.Default().PDF, zerolog.Nop())
	a.Timestamp = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return a
}

func TestAssembleBytesDeterministic(t *testing.T) {
	a := testAssembler()
	texts := []string{"INVOICE #1234", "line two\nline three"}

	first, err := a.AssembleBytes(texts)
	require.NoError(t, err)
	second, err := a.AssembleBytes(texts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(string(first), "%PDF-"))
}

func TestAssembleWritesFileAndCreatesParents(t *testing.T) {
	a := testAssembler()
	out := filepath.Join(t.TempDir(), "deep", "nested", "out.pdf")

	require.NoError(t, a.Assemble([]string{"hello"}, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestAssembleRefusesDirectoryOutput(t *testing.T) {
	a := testAssembler()
	dir := t.TempDir()

	err := a.Assemble([]string{"hello"}, dir)
	assert.ErrorIs(t, err, ErrWriteFailure)
}

func TestPaginateBound(t *testing.T) {
	layout := DefaultLayout()
	bound := int((layout.PageHeight - 2*layout.Margin) / layout.LineHeight)

	var lines []string
	for i := 0; i < bound*2+5; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}

	pages := paginate(lines, layout)
	assert.Greater(t, len(pages), 1)

	total := 0
	for _, page := range pages {
		assert.LessOrEqual(t, len(page), bound)
		total += len(page)
	}
	assert.Equal(t, len(lines), total)
}

func TestPaginateEmptyInputYieldsOnePage(t *testing.T) {
	pages := paginate(nil, DefaultLayout())
	assert.Len(t, pages, 1)
}

func TestAssembleMultiPageOutput(t *testing.T) {
	a := testAssembler()
	layout := a.Layout
	bound := int((layout.PageHeight - 2*layout.Margin) / layout.LineHeight)

	lines := make([]string, bound+1)
	for i := range lines {
		lines[i] = "x"
	}
	data, err := a.AssembleBytes([]string{strings.Join(lines, "\n")})
	require.NoError(t, err)

	single, err := a.AssembleBytes([]string{"x"})
	require.NoError(t, err)

	// More pages means a strictly larger document.
	assert.Greater(t, len(data), len(single))
}

func TestToLatin1(t *testing.T) {
	assert.Equal(t, "plain", toLatin1("plain"))
	// Characters outside Latin-1 fall back to the raw string.
	assert.Equal(t, "世界", toLatin1("世界"))
}
