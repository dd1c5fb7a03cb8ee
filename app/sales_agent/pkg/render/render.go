// Package render lays out report text as a paginated PDF.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const (
	marginSide   = 15.0
	marginTop    = 10.0
	pageBreak    = 15.0
	titleSize    = 16.0
	titleHeight  = 10.0
	titleGap     = 10.0
	bodySize     = 12.0
	bodyLineH    = 6.0
	blankSpacing = 3.0
)

// docDate is stamped into every document so equal inputs give equal bytes.
var docDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// BlockKind distinguishes drawn text from vertical spacing.
type BlockKind int

const (
	BlockText BlockKind = iota
	BlockGap
)

// Block is one step of the body layout.
type Block struct {
	Kind BlockKind
	Text string // already mapped to the PDF font encoding
}

// Title of the generated document.
func Title(companyName string) string {
	return "Sales Insights Report — " + companyName
}

// FileName is the download name for a company's report.
func FileName(companyName string) string {
	return strings.ReplaceAll(companyName, " ", "_") + "_report.pdf"
}

// Layout splits content into text blocks and gaps. Whitespace-only lines
// become gaps, never empty text rows.
func Layout(content string) []Block {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blocks = append(blocks, Block{Kind: BlockGap})
			continue
		}
		blocks = append(blocks, Block{Kind: BlockText, Text: Encode(line)})
	}
	return blocks
}

// Encode maps s to Windows-1252, the encoding of the core PDF fonts.
// Runes outside it become '?'.
func Encode(s string) string {
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	out, err := enc.String(s)
	if err != nil {
		// 只有非法 UTF-8 会走到这里，逐字符兜底
		var sb strings.Builder
		for _, r := range s {
			if b, ok := charmap.Windows1252.EncodeRune(r); ok {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('?')
			}
		}
		return sb.String()
	}
	// ReplaceUnsupported substitutes the ASCII SUB byte
	return strings.ReplaceAll(out, "\x1a", "?")
}

// Render produces the PDF bytes for one report.
func Render(content, companyName string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(docDate)
	pdf.SetModificationDate(docDate)
	pdf.SetCompression(true)
	pdf.SetAutoPageBreak(true, pageBreak)
	pdf.SetMargins(marginSide, marginTop, marginSide)
	pdf.SetTitle(Encode(Title(companyName)), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", titleSize)
	pdf.CellFormat(0, titleHeight, Encode(Title(companyName)), "", 1, "C", false, 0, "")
	pdf.Ln(titleGap)

	pdf.SetFont("Arial", "", bodySize)
	for _, b := range Layout(content) {
		switch b.Kind {
		case BlockGap:
			pdf.Ln(blankSpacing)
		case BlockText:
			pdf.MultiCell(0, bodyLineH, b.Text, "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
