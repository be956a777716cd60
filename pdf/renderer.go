// Package pdf renders author reports as paginated PDF documents.
//
// Layout: every page starts with the title block (title, generation time,
// requested range) and ends with a "<page> / <total>" footer. Each author
// section shows the author name, then the works published before the thesis
// defense and the works published after it, each list as a table with the
// columns Title, Publication Date, Category, Journal, Pages and Digital
// Reference. Empty lists are not printed.
package pdf

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/bobinette/deptlib/log"
	"github.com/bobinette/deptlib/report"
)

const (
	margin     = 15.0
	lineHeight = 5.0
	padding    = 1.0
	family     = "Helvetica"
	utf8Family = "body"
)

var columns = []struct {
	title string
	width float64
}{
	{"Title", 50},
	{"Publication Date", 24},
	{"Category", 26},
	{"Journal", 30},
	{"Pages", 12},
	{"Digital Reference", 38},
}

// Renderer writes reports with fpdf. The zero value uses the core Helvetica
// font, which only covers latin characters; set FontFile to a UTF-8 TrueType
// font to print other scripts. Characters the core font cannot print come
// out as dots and are reported to Logger, when set.
type Renderer struct {
	FontFile string
	Logger   log.Logger
}

func (r *Renderer) Render(w io.Writer, rep report.Report, meta report.Meta) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(true, margin+5)
	doc.SetCreationDate(meta.GeneratedAt)
	doc.SetCatalogSort(true)
	doc.AliasNbPages("")

	p := page{doc: doc, family: family}
	p.tr = latin(doc.UnicodeTranslatorFromDescriptor(""), &p.lost)
	if r.FontFile != "" {
		doc.AddUTF8Font(utf8Family, "", r.FontFile)
		doc.AddUTF8Font(utf8Family, "B", r.FontFile)
		p.family = utf8Family
		p.tr = func(s string) string { return s }
	}

	doc.SetTitle(meta.Title, true)
	doc.SetHeaderFunc(func() { p.header(meta) })
	doc.SetFooterFunc(p.footer)

	doc.AddPage()
	for _, author := range rep.Authors {
		p.section(author)
	}

	if err := doc.Error(); err != nil {
		return err
	}
	if p.lost > 0 && r.Logger != nil {
		r.Logger.
			WithField("report", meta.ID).
			Warnf("%d characters could not be printed with the core font, set report.font to a UTF-8 font", p.lost)
	}
	return doc.Output(w)
}

// latin wraps the cp1252 translator tr and counts in lost the characters
// it cannot encode.
func latin(tr func(string) string, lost *int) func(string) string {
	return func(s string) string {
		out := tr(s)
		i := 0
		for _, r := range s {
			if r >= 0x80 && out[i] == '.' {
				*lost++
			}
			i++
		}
		return out
	}
}

// page holds the drawing state of one document.
type page struct {
	doc    *fpdf.Fpdf
	family string
	tr     func(string) string

	// inTable is set while a works table is printed, so that a page break
	// repeats the column headers.
	inTable bool

	// top is where the content of the current page starts.
	top float64

	lost int
}

func (p *page) header(meta report.Meta) {
	d := p.doc
	d.SetFont(p.family, "B", 18)
	d.CellFormat(0, 9, p.tr(meta.Title), "", 1, "C", false, 0, "")

	d.SetFont(p.family, "", 10)
	d.CellFormat(0, 6, p.tr("Generated on "+meta.GeneratedAt.Format(report.DateTimeLayout)), "", 1, "C", false, 0, "")
	d.CellFormat(0, 6, p.tr(fmt.Sprintf(
		"Publications from %s to %s",
		meta.StartDate.Format(report.DateLayout),
		meta.EndDate.Format(report.DateLayout),
	)), "", 1, "C", false, 0, "")
	d.Ln(6)

	if p.inTable {
		p.columnHeaders()
	}
	p.top = d.GetY()
}

func (p *page) footer() {
	d := p.doc
	d.SetY(-margin)
	d.SetFont(p.family, "", 9)
	d.CellFormat(0, 8, fmt.Sprintf("%d / {nb}", d.PageNo()), "", 0, "C", false, 0, "")
}

func (p *page) section(author report.AuthorReportData) {
	d := p.doc
	d.SetFont(p.family, "B", 13)
	d.CellFormat(0, 8, p.tr(author.AuthorName), "B", 1, "L", false, 0, "")
	d.Ln(3)

	if len(author.WorksBeforeThesis) > 0 {
		p.table(report.BeforeDefenseTag, author.WorksBeforeThesis)
	}
	if len(author.WorksAfterThesis) > 0 {
		p.table(report.AfterDefenseTag, author.WorksAfterThesis)
	}
	d.Ln(6)
}

func (p *page) table(caption string, works []report.WorkInfo) {
	d := p.doc
	d.SetFont(p.family, "B", 11)
	d.CellFormat(0, 7, p.tr(caption), "", 1, "L", false, 0, "")

	p.columnHeaders()
	p.inTable = true
	for _, w := range works {
		p.row(w)
	}
	p.inTable = false
	d.Ln(4)
}

func (p *page) columnHeaders() {
	d := p.doc
	d.SetFont(p.family, "B", 8)
	d.SetFillColor(238, 238, 238)
	for _, c := range columns {
		d.CellFormat(c.width, 7, p.tr(c.title), "1", 0, "L", true, 0, "")
	}
	d.Ln(-1)
}

func (p *page) row(w report.WorkInfo) {
	d := p.doc
	d.SetFont(p.family, "", 8)

	cells := []string{
		w.Title,
		w.PublicationDate.Format(report.DateLayout),
		w.Category,
		w.Journal,
		strconv.Itoa(w.Pages),
		w.DigitalReference,
	}

	lines := make([][]string, len(cells))
	rows := 1
	for i, cell := range cells {
		lines[i] = d.SplitText(p.tr(cell), columns[i].width-2*padding)
		if len(lines[i]) > rows {
			rows = len(lines[i])
		}
	}

	// A row is moved to the next page when it does not fit on this one, and
	// split over several pages when it does not fit on any.
	for first := 0; first < rows; {
		n := rows - first
		if fit := p.linesLeft(d.GetY()); fit < n {
			if fit < 1 || (first == 0 && n <= p.linesLeft(p.top)) {
				p.newPage()
				continue
			}
			n = fit
		}

		p.slice(w, lines, first, n)
		first += n
		if first < rows {
			p.newPage()
		}
	}
}

// linesLeft returns how many table lines fit between y and the bottom margin.
func (p *page) linesLeft(y float64) int {
	_, pageHeight := p.doc.GetPageSize()
	_, _, _, bottom := p.doc.GetMargins()
	return int(math.Floor((pageHeight - bottom - y - 1e-6) / lineHeight))
}

func (p *page) newPage() {
	p.doc.AddPage()
	p.doc.SetFont(p.family, "", 8)
}

// slice draws the lines [first, first+n) of every cell of a row.
func (p *page) slice(w report.WorkInfo, lines [][]string, first, n int) {
	d := p.doc
	height := float64(n) * lineHeight

	x, y := d.GetXY()
	left := x
	for i := range lines {
		d.Rect(x, y, columns[i].width, height, "D")

		link := ""
		if i == len(lines)-1 && isLink(w.DigitalReference) {
			link = w.DigitalReference
			d.SetTextColor(0, 0, 238)
			d.SetFont(p.family, "U", 8)
		}
		for j := first; j < first+n && j < len(lines[i]); j++ {
			d.SetXY(x+padding, y+float64(j-first)*lineHeight)
			d.CellFormat(columns[i].width-2*padding, lineHeight, lines[i][j], "", 0, "L", false, 0, link)
		}
		if link != "" {
			d.SetTextColor(0, 0, 0)
			d.SetFont(p.family, "", 8)
		}
		x += columns[i].width
	}
	d.SetXY(left, y+height)
}

func isLink(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
