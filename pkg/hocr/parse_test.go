package hocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHOCR = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" lang="en">
 <head><title></title><meta name="ocr-system" content="tesseract 5.3.0"/></head>
 <body>
  <div class="ocr_page" id="page_1" title="image &quot;unknown&quot;; bbox 0 0 640 480; ppageno 0">
   <div class="ocr_carea" id="block_1_1" title="bbox 36 92 618 184">
    <p class="ocr_par" id="par_1_1" lang="eng" title="bbox 36 92 618 184">
     <span class="ocr_line" id="line_1_1" title="bbox 36 92 618 130; baseline 0 -8">
      <span class="ocrx_word" id="word_1_1" title="bbox 36 92 260 130; x_wconf 96">INVOICE</span>
      <span class="ocrx_word" id="word_1_2" title="bbox 280 92 420 130; x_wconf 91">#1234</span>
     </span>
     <span class="ocr_line" id="line_1_2" title="bbox 36 150 618 184; baseline 0 -8">
      <span class="ocrx_word" id="word_1_3" title="bbox 36 150 120 184; x_wconf 42">smudge</span>
     </span>
    </p>
   </div>
  </div>
 </body>
</html>`

func TestParseWords(t *testing.T) {
	words, err := ParseWords([]byte(sampleHOCR))
	require.NoError(t, err)
	require.Len(t, words, 3)

	assert.Equal(t, "INVOICE", words[0].Text)
	assert.Equal(t, 96.0, words[0].Confidence)
	assert.Equal(t, NewBoundingBox(36, 92, 260, 130), words[0].BBox)

	assert.Equal(t, "#1234", words[1].Text)
	assert.Equal(t, "smudge", words[2].Text)
	assert.Equal(t, 42.0, words[2].Confidence)
}

func TestParseWordsEmptyDocument(t *testing.T) {
	words, err := ParseWords([]byte("<html><body></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestParseTitle(t *testing.T) {
	props := ParseTitle("bbox 100 200 300 400; x_wconf 95")
	assert.Equal(t, []string{"100", "200", "300", "400"}, props["bbox"])
	assert.Equal(t, []string{"95"}, props["x_wconf"])
}

func TestParseBoundingBoxFromTitle(t *testing.T) {
	bbox := ParseBoundingBoxFromTitle("bbox 10 20 30 40; x_wconf 88")
	require.NotNil(t, bbox)
	assert.Equal(t, NewBoundingBox(10, 20, 30, 40), *bbox)
	assert.Equal(t, 20.0, bbox.Width())
	assert.Equal(t, 20.0, bbox.Height())

	assert.Nil(t, ParseBoundingBoxFromTitle("x_wconf 88"))
}
