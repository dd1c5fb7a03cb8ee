package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/render"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Acme Cloud</w:t></w:r><w:r><w:t xml:space="preserve"> Suite</w:t></w:r></w:p>
<w:p><w:r><w:t>Cuts</w:t><w:tab/><w:t>costs 30%</w:t></w:r></w:p>
<w:p/>
<w:p><w:r><w:t>Ships &amp; scales</w:t></w:r></w:p>
</w:body>
</w:document>`

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":            body,
		"word/_rels/document.xml.rels": `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractPlainText(t *testing.T) {
	res := Extract([]byte("Hello\nWorld"), TypeText, "notes.txt")
	assert.Equal(t, "Hello\nWorld", res.Text)
	assert.Empty(t, res.Warning)

	res = Extract([]byte("Hello"), "text/plain; charset=utf-8", "")
	assert.Equal(t, "Hello", res.Text)
}

func TestExtractInvalidUTF8(t *testing.T) {
	res := Extract([]byte{0xff, 0xfe, 'h', 'i'}, TypeText, "")
	assert.Empty(t, res.Text)
	assert.Contains(t, res.Warning, "Error processing file")
}

func TestExtractUnsupported(t *testing.T) {
	res := Extract([]byte("slides"), "application/vnd.openxmlformats-officedocument.presentationml.presentation", "deck.pptx")
	assert.Empty(t, res.Text)
	assert.True(t, res.Unsupported())
	assert.NotEmpty(t, res.Warning)
}

func TestExtractInfersTypeFromName(t *testing.T) {
	res := Extract([]byte("from extension"), "application/octet-stream", "NOTES.TXT")
	assert.Equal(t, "from extension", res.Text)

	res = Extract([]byte("no hint"), "", "blob")
	assert.True(t, res.Unsupported())
}

func TestExtractDocx(t *testing.T) {
	res := Extract(buildDocx(t, documentXML), TypeDOCX, "overview.docx")
	require.Empty(t, res.Warning)
	assert.Equal(t, "Acme Cloud Suite\nCuts\tcosts 30%\n\nShips & scales", res.Text)
}

func TestExtractCorruptFiles(t *testing.T) {
	for _, kind := range []string{TypePDF, TypeDOCX} {
		res := Extract([]byte("definitely not a document"), kind, "")
		assert.Empty(t, res.Text, kind)
		assert.Contains(t, res.Warning, "Error processing file", kind)
		assert.False(t, res.Unsupported(), kind)
	}
}

func TestExtractPDF(t *testing.T) {
	doc, err := render.Render("Quarterly pipeline review", "Acme")
	require.NoError(t, err)

	res := Extract(doc, TypePDF, "report.pdf")
	require.Empty(t, res.Warning)
	assert.Contains(t, res.Text, "Quarterly pipeline review")
}

func TestParagraphsFromXMLNested(t *testing.T) {
	body := `<w:body xmlns:w="w"><w:p><w:r><w:t>outer</w:t></w:r><w:txbx><w:p><w:r><w:t>-inner</w:t></w:r></w:p></w:txbx></w:p><w:p><w:r><w:t>line</w:t><w:br/><w:t>break</w:t></w:r></w:p></w:body>`
	got, err := paragraphsFromXML(body)
	require.NoError(t, err)
	assert.Equal(t, []string{"outer-inner", "line\nbreak"}, got)
}
