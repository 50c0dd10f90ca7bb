package present

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	"github.com/alexanderramin/bfmp/internal/logging"
	"github.com/alexanderramin/bfmp/internal/report"
	"github.com/jung-kurt/gofpdf"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	pdfMargin    = 12.0
	pdfLine      = 5.0
	pdfCellPad   = 1.5
	pdfMaxImageH = 110.0
	pdfFont      = "Helvetica"
)

// PDFOptions control PDF export.
type PDFOptions struct {
	Loader ImageLoader
	Author string
}

// WritePDF renders doc as an A4 PDF with 12 mm margins. Images that cannot be
// loaded are replaced by a note; they never fail the export.
func WritePDF(ctx context.Context, w io.Writer, doc report.Document, opts PDFOptions) error {
	if opts.Loader == nil {
		opts.Loader = LocatorLoader{}
	}
	p := newPDFWriter(ctx, doc, opts)
	p.render(doc)
	if err := p.pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

type pdfWriter struct {
	ctx    context.Context
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	loader ImageLoader
	images int
	links  map[string]int
}

func newPDFWriter(ctx context.Context, doc report.Document, opts PDFOptions) *pdfWriter {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin+6)
	pdf.AliasNbPages("")
	pdf.SetTitle(doc.Header.Title, true)
	pdf.SetCreator("bfmp", false)
	if opts.Author != "" {
		pdf.SetAuthor(opts.Author, true)
	}

	p := &pdfWriter{
		ctx:    ctx,
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		loader: opts.Loader,
		links:  map[string]int{},
	}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfMargin - 2)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 4, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	return p
}

func (p *pdfWriter) render(doc report.Document) {
	if doc.Cover != nil {
		p.cover(*doc.Cover)
	}
	p.pdf.AddPage()
	p.header(doc.Header)
	p.toc(doc.TOC)

	prev := report.PartBody
	for i, s := range doc.Sections {
		if i > 0 && prev == report.PartBody && s.Part == report.PartRecordBook {
			p.pdf.AddPage()
		}
		prev = s.Part
		p.section(s)
	}

	p.pdf.Ln(pdfLine)
	p.reset(8)
	p.pdf.SetTextColor(102, 102, 102)
	for _, line := range doc.Footer {
		p.pdf.MultiCell(0, 4, p.tr(line), "", "L", false)
	}
}

func (p *pdfWriter) contentWidth() float64 {
	w, _ := p.pdf.GetPageSize()
	l, _, r, _ := p.pdf.GetMargins()
	return w - l - r
}

// ensure starts a new page when h more millimetres would not fit.
func (p *pdfWriter) ensure(h float64) {
	_, pageH := p.pdf.GetPageSize()
	_, _, _, bottom := p.pdf.GetMargins()
	if p.pdf.GetY()+h > pageH-bottom {
		p.pdf.AddPage()
	}
}

func (p *pdfWriter) reset(size float64) {
	p.pdf.SetFont(pdfFont, "", size)
	p.pdf.SetTextColor(51, 51, 51)
}

func (p *pdfWriter) run(in report.Inline, size float64) {
	switch {
	case in.Placeholder:
		p.pdf.SetFont(pdfFont, "I", size)
		p.pdf.SetTextColor(85, 85, 85)
	case in.Strong:
		p.pdf.SetFont(pdfFont, "B", size)
		p.pdf.SetTextColor(51, 51, 51)
	default:
		p.reset(size)
	}
}

func (p *pdfWriter) inlines(parts []report.Inline, size float64) {
	for _, in := range parts {
		p.run(in, size)
		p.pdf.Write(pdfLine, p.tr(in.Text))
	}
	p.reset(size)
	p.pdf.Ln(pdfLine + 1)
}

func (p *pdfWriter) cover(c report.Cover) {
	p.pdf.AddPage()
	p.image(report.Image{Src: c.Photo, Alt: "Cover Photo"}, 150)
	p.pdf.Ln(8)
	p.pdf.SetFont(pdfFont, "B", 22)
	p.pdf.SetTextColor(51, 51, 51)
	p.pdf.MultiCell(0, 10, p.tr(c.Title), "", "C", false)
	p.pdf.Ln(4)
	for _, line := range [][]report.Inline{
		{{Text: "Vessel: ", Strong: true}, c.Vessel},
		{{Text: "IMO: ", Strong: true}, c.IMO},
		{{Text: "Date: ", Strong: true}, {Text: c.Date}},
	} {
		p.inlines(line, 12)
	}
}

func (p *pdfWriter) header(h report.Header) {
	if h.Logo != "" {
		p.image(report.Image{Src: h.Logo, Alt: "Company Logo"}, 18)
	}
	p.pdf.SetFont(pdfFont, "B", 18)
	p.pdf.SetTextColor(51, 51, 51)
	p.pdf.MultiCell(0, 9, p.tr(h.Title), "", "L", false)
	p.inlines([]report.Inline{{Text: "Document Number: ", Strong: true}, h.Number, {Text: "   " + h.Revision}}, 10)
	p.inlines([]report.Inline{{Text: "Vessel Name: ", Strong: true}, h.Vessel}, 10)
	p.inlines([]report.Inline{{Text: "IMO Number: ", Strong: true}, h.IMO}, 10)
	p.inlines([]report.Inline{{Text: "Date: ", Strong: true}, {Text: h.Date}}, 10)

	y := p.pdf.GetY()
	l, _, _, _ := p.pdf.GetMargins()
	p.pdf.SetDrawColor(221, 221, 221)
	p.pdf.Line(l, y, l+p.contentWidth(), y)
	p.pdf.Ln(4)
}

func (p *pdfWriter) toc(entries []report.TOCEntry) {
	p.heading2("Index")
	p.reset(10)
	for _, e := range entries {
		link := p.pdf.AddLink()
		p.links[e.ID] = link
		p.pdf.CellFormat(0, pdfLine+1, p.tr(e.Label()), "", 1, "L", false, link, "")
	}
}

func (p *pdfWriter) heading2(title string) {
	p.ensure(20)
	p.pdf.Ln(4)
	p.pdf.SetFont(pdfFont, "B", 14)
	p.pdf.SetTextColor(51, 51, 51)
	p.pdf.MultiCell(0, 7, p.tr(title), "", "L", false)
	p.pdf.Ln(1)
}

func (p *pdfWriter) section(s report.Section) {
	p.heading2(s.Heading())
	if link, ok := p.links[s.ID]; ok {
		p.pdf.SetLink(link, p.pdf.GetY()-8, -1)
	}
	for _, blk := range s.Blocks {
		p.block(blk)
	}
}

func (p *pdfWriter) block(blk report.Block) {
	switch v := blk.(type) {
	case report.Heading:
		size := 12.0
		if v.Level == 4 {
			size = 11
		}
		p.ensure(15)
		p.pdf.Ln(2)
		p.pdf.SetFont(pdfFont, "B", size)
		p.pdf.MultiCell(0, 6, p.tr(v.Text), "", "L", false)
	case report.Paragraph:
		p.inlines(v.Parts, 10)
	case report.Table:
		p.table(v)
	case report.Image:
		p.image(v, pdfMaxImageH)
		if len(v.Caption) > 0 {
			p.inlines(v.Caption, 9)
		}
	case report.List:
		p.reset(10)
		l, _, _, _ := p.pdf.GetMargins()
		for _, item := range v.Items {
			p.pdf.SetX(l + 4)
			p.pdf.MultiCell(p.contentWidth()-4, pdfLine, p.tr("• "+item), "", "L", false)
		}
		p.pdf.Ln(1)
	case report.PlaceholderBlock:
		p.pdf.SetFont(pdfFont, "I", 10)
		p.pdf.SetTextColor(85, 85, 85)
		p.pdf.SetFillColor(248, 250, 252)
		p.pdf.SetDrawColor(203, 213, 225)
		p.pdf.MultiCell(0, pdfLine, p.tr(v.Text), "1", "L", true)
		p.pdf.Ln(2)
	case report.Group:
		p.ensure(25)
		p.pdf.Ln(2)
		p.pdf.SetFont(pdfFont, "B", 11)
		p.pdf.SetTextColor(51, 51, 51)
		p.pdf.MultiCell(0, 6, p.tr(v.Title), "", "L", false)
		for _, inner := range v.Blocks {
			p.block(inner)
		}
	case report.SignatureBlock:
		t := report.Table{Head: []string{"Role", "Name", "Signature", "Date"}}
		for _, r := range v.Rows {
			t.Rows = append(t.Rows, []report.Cell{
				{Header: true, Parts: []report.Inline{{Text: r.Role}}},
				{Parts: []report.Inline{r.Name}},
				{}, {},
			})
		}
		p.table(t)
	}
}

type pdfCell struct {
	text  string
	style string
	color [3]int
	fill  bool
	w     float64
}

func (p *pdfWriter) table(t report.Table) {
	width := p.contentWidth()
	cols := []float64{0.22 * width, 0.28 * width, 0.22 * width, 0.28 * width}
	if len(t.Head) > 0 {
		cols = make([]float64, len(t.Head))
		for i := range cols {
			cols[i] = width / float64(len(t.Head))
		}
		head := make([]pdfCell, len(t.Head))
		for i, h := range t.Head {
			head[i] = pdfCell{text: p.tr(h), style: "B", color: [3]int{51, 51, 51}, fill: true, w: cols[i]}
		}
		p.row(head)
	}

	for _, r := range t.Rows {
		cells := make([]pdfCell, 0, len(r))
		col := 0
		for _, c := range r {
			span := c.Span
			if span < 1 {
				span = 1
			}
			w := 0.0
			for i := col; i < col+span && i < len(cols); i++ {
				w += cols[i]
			}
			col += span
			cells = append(cells, p.cell(c, w))
		}
		p.row(cells)
	}
	p.pdf.Ln(3)
}

func (p *pdfWriter) cell(c report.Cell, w float64) pdfCell {
	out := pdfCell{style: "", color: [3]int{51, 51, 51}, fill: c.Header, w: w}
	for _, in := range c.Parts {
		out.text += in.Text
		if in.Placeholder {
			out.style, out.color = "I", [3]int{85, 85, 85}
		}
	}
	if c.Header {
		out.style = "B"
	}
	out.text = p.tr(out.text)
	return out
}

func (p *pdfWriter) row(cells []pdfCell) {
	h := 0.0
	for _, c := range cells {
		p.pdf.SetFont(pdfFont, c.style, 9)
		n := len(p.pdf.SplitLines([]byte(c.text), c.w-2*pdfCellPad))
		if n < 1 {
			n = 1
		}
		if ch := float64(n)*4.5 + 2*pdfCellPad; ch > h {
			h = ch
		}
	}
	p.ensure(h)

	l, _, _, _ := p.pdf.GetMargins()
	x, y := l, p.pdf.GetY()
	p.pdf.SetDrawColor(209, 213, 219)
	p.pdf.SetFillColor(248, 250, 252)
	for _, c := range cells {
		style := "D"
		if c.fill {
			style = "FD"
		}
		p.pdf.Rect(x, y, c.w, h, style)
		p.pdf.SetXY(x+pdfCellPad, y+pdfCellPad)
		p.pdf.SetFont(pdfFont, c.style, 9)
		p.pdf.SetTextColor(c.color[0], c.color[1], c.color[2])
		p.pdf.MultiCell(c.w-2*pdfCellPad, 4.5, c.text, "", "L", false)
		x += c.w
	}
	p.pdf.SetXY(l, y+h)
}

// image draws img scaled to the content width and maxH. Unloadable images
// become a short note.
func (p *pdfWriter) image(img report.Image, maxH float64) {
	name, tp, info, err := p.register(img.Src)
	if err != nil {
		logging.WithOperation(logging.WithComponent("present"), "pdf").Warn("image not embedded", "src", img.Src, "error", err)
		p.inlines([]report.Inline{{Text: fmt.Sprintf("[%s could not be loaded]", img.Alt), Placeholder: true}}, 9)
		return
	}

	w, h := info.Extent()
	maxW := p.contentWidth()
	if w > maxW {
		h, w = h*maxW/w, maxW
	}
	if h > maxH {
		w, h = w*maxH/h, maxH
	}
	p.ensure(h + 2)
	l, _, _, _ := p.pdf.GetMargins()
	y := p.pdf.GetY()
	p.pdf.ImageOptions(name, l+(maxW-w)/2, y, w, h, false, gofpdf.ImageOptions{ImageType: tp, ReadDpi: true}, 0, "")
	p.pdf.SetY(y + h + 2)
}

func (p *pdfWriter) register(src string) (string, string, *gofpdf.ImageInfoType, error) {
	data, mt, err := p.loader.Load(p.ctx, src)
	if err != nil {
		return "", "", nil, err
	}

	var tp string
	switch mt {
	case "image/png":
		tp = "PNG"
	case "image/jpeg":
		tp = "JPG"
	case "image/gif":
		tp = "GIF"
	default:
		data, err = toPNG(data)
		if err != nil {
			return "", "", nil, fmt.Errorf("converting %s: %w", mt, err)
		}
		tp = "PNG"
	}

	p.images++
	name := fmt.Sprintf("img%d", p.images)
	info := p.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: tp, ReadDpi: true}, bytes.NewReader(data))
	if p.pdf.Err() {
		err := p.pdf.Error()
		p.pdf.ClearError()
		return "", "", nil, fmt.Errorf("registering image: %w", err)
	}
	if info == nil {
		return "", "", nil, fmt.Errorf("registering image: no image info")
	}
	return name, tp, info, nil
}

// toPNG re-encodes any decodable image (BMP, TIFF, WebP included) as PNG.
func toPNG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
