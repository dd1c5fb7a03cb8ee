// Package extract turns an uploaded product document into plain text for
// the report prompt. Failures never surface as errors: the caller gets empty
// text and a warning.
package extract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	TypePDF  = "application/pdf"
	TypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	TypeText = "text/plain"
)

// Result of one extraction. Warning is empty on success.
type Result struct {
	Text    string
	Warning string
}

// Unsupported reports whether the upload type was not recognised.
func (r Result) Unsupported() bool {
	return strings.HasPrefix(r.Warning, "Unsupported file type")
}

// Extract dispatches on the declared content type. fileName is only used
// when the browser sent no useful type.
func Extract(data []byte, contentType, fileName string) (res Result) {
	kind := resolveType(contentType, fileName)

	defer func() {
		// 损坏的 PDF 可能让解析库 panic
		if r := recover(); r != nil {
			res = Result{Warning: fmt.Sprintf("Error processing file: %v", r)}
		}
	}()

	var (
		text string
		err  error
	)
	switch kind {
	case TypePDF:
		text, err = pdfText(data)
	case TypeDOCX:
		text, err = docxText(data)
	case TypeText:
		if !utf8.Valid(data) {
			err = fmt.Errorf("file is not valid UTF-8 text")
		}
		text = string(data)
	default:
		return Result{Warning: "Unsupported file type. Please upload a PDF, DOCX, or TXT file."}
	}
	if err != nil {
		return Result{Warning: fmt.Sprintf("Error processing file: %v", err)}
	}
	return Result{Text: text}
}

func resolveType(contentType, fileName string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && mt != "application/octet-stream" {
		return mt
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return TypePDF
	case ".docx":
		return TypeDOCX
	case ".txt":
		return TypeText
	}
	return contentType
}

// pdfText concatenates page text in page order without separators.
func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	paragraphs, err := paragraphsFromXML(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("failed to parse docx body: %w", err)
	}
	return strings.Join(paragraphs, "\n"), nil
}

// paragraphsFromXML collects the text of every w:p in a WordprocessingML
// body, one entry per outermost paragraph.
func paragraphsFromXML(body string) ([]string, error) {
	dec := xml.NewDecoder(strings.NewReader(body))

	var (
		paragraphs []string
		current    strings.Builder
		depth      int
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				depth++
			case "t":
				inText = depth > 0
			case "tab":
				if depth > 0 {
					current.WriteString("\t")
				}
			case "br", "cr":
				if depth > 0 {
					current.WriteString("\n")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if depth == 0 {
					continue
				}
				depth--
				if depth == 0 {
					paragraphs = append(paragraphs, current.String())
					current.Reset()
				}
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}
