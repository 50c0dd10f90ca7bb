package report

import (
	"html"
	"strings"
)

// Style is the stylesheet embedded in every fragment.
const Style = `.report-preview { font-family: Arial, sans-serif; color: #333; line-height: 1.5; max-width: 960px; margin: 0 auto; padding: 24px; background: #fff; }
.report-preview h1 { font-size: 1.8rem; margin: 0 0 8px; }
.report-preview h2 { font-size: 1.35rem; margin-top: 28px; border-bottom: 1px solid #e5e7eb; padding-bottom: 4px; }
.report-preview h3 { font-size: 1.1rem; margin-top: 18px; }
.report-preview h4 { font-size: 1rem; margin: 14px 0 6px; }
.report-preview .report-header { border-bottom: 2px solid #ddd; margin-bottom: 12px; padding-bottom: 8px; }
.report-preview .rev-marker { margin-left: 12px; padding: 2px 8px; border-radius: 4px; background: #eef2f7; font-size: 0.85rem; }
.report-preview .cover-page { text-align: center; padding: 40px 0; }
.report-preview .cover-image img { max-width: 100%; max-height: 480px; }
.report-preview .page-break { page-break-after: always; break-after: page; height: 0; }
.report-preview table { border-collapse: collapse; width: 100%; margin: 8px 0 16px; }
.report-preview th, .report-preview td { border: 1px solid #d1d5db; padding: 8px; text-align: left; vertical-align: top; }
.report-preview th { background: #f8fafc; width: 22%; }
.report-preview ul { padding-left: 1.1rem; }
.report-preview .placeholder-text { color: #555; font-style: italic; }
.report-preview .placeholder-section { padding: 12px; border: 1px dashed #cbd5e1; background: #f8fafc; }
.report-preview .diagram-image { margin: 12px 0; page-break-inside: avoid; }
.report-preview .diagram-image img, .report-preview .certificate-image img { max-width: 100%; }
.report-preview .signature-line { display: inline-block; min-width: 180px; border-bottom: 1px solid #333; }
.report-preview .footer { margin-top: 32px; border-top: 1px solid #e5e7eb; font-size: 0.85rem; color: #666; }`

// HTML writes doc as a single self-contained fragment. Values are written
// verbatim; only attribute values are escaped.
func HTML(doc Document) string {
	var b strings.Builder
	w := &htmlWriter{b: &b}

	b.WriteString(`<div class="report-preview">` + "\n")
	b.WriteString("<style>\n" + Style + "\n</style>\n")

	if doc.Cover != nil {
		w.cover(*doc.Cover)
	}
	w.header(doc.Header)
	w.toc(doc.TOC)

	prev := -1
	for _, s := range doc.Sections {
		if prev == int(PartBody) && s.Part == PartRecordBook {
			b.WriteString(`<div class="page-break"></div>` + "\n")
		}
		prev = int(s.Part)
		w.section(s)
	}

	b.WriteString(`<div class="footer">` + "\n")
	for _, line := range doc.Footer {
		b.WriteString("<p>" + line + "</p>\n")
	}
	b.WriteString("</div>\n</div>\n")
	return b.String()
}

type htmlWriter struct {
	b *strings.Builder
}

func (w *htmlWriter) str(s string) { w.b.WriteString(s) }

func attr(s string) string { return html.EscapeString(s) }

func (w *htmlWriter) cover(c Cover) {
	w.str(`<div class="cover-page">` + "\n")
	w.str(`<div class="cover-image"><img src="` + attr(c.Photo) + `" alt="Cover Photo"></div>` + "\n")
	w.str(`<div class="cover-meta">` + "\n")
	w.str("<h1>" + c.Title + "</h1>\n")
	w.str("<p><strong>Vessel:</strong> " + inlines(c.Vessel) + "</p>\n")
	w.str("<p><strong>IMO:</strong> " + inlines(c.IMO) + "</p>\n")
	w.str("<p><strong>Date:</strong> " + c.Date + "</p>\n")
	w.str("</div>\n</div>\n")
	w.str(`<div class="page-break"></div>` + "\n")
}

func (w *htmlWriter) header(h Header) {
	w.str(`<div class="report-header">` + "\n")
	w.str("<h1>" + h.Title + "</h1>\n")
	w.str("<p><strong>Document Number:</strong> " + inlines(h.Number) +
		` <span class="rev-marker">` + h.Revision + "</span></p>\n")
	w.str("<p><strong>Vessel Name:</strong> " + inlines(h.Vessel) + "</p>\n")
	w.str("<p><strong>IMO Number:</strong> " + inlines(h.IMO) + "</p>\n")
	w.str("<p><strong>Date:</strong> " + h.Date + "</p>\n")
	if h.Logo != "" {
		w.str(`<img src="` + attr(h.Logo) + `" alt="Company Logo" style="max-height: 60px; max-width: 200px; margin-top: 10px;">` + "\n")
	}
	w.str("</div>\n")
}

func (w *htmlWriter) toc(entries []TOCEntry) {
	w.str("<h2>Index</h2>\n")
	w.str(`<div class="toc">` + "\n<ol>\n")
	for _, e := range entries {
		w.str(`<li><a href="#` + attr(e.ID) + `">` + e.Title + "</a></li>\n")
	}
	w.str("</ol>\n</div>\n")
}

func (w *htmlWriter) section(s Section) {
	w.str(`<h2 id="` + attr(s.ID) + `">` + s.Heading() + "</h2>\n")
	w.str(`<div class="section">` + "\n")
	for _, blk := range s.Blocks {
		w.block(blk)
	}
	w.str("</div>\n")
}

func (w *htmlWriter) block(blk Block) {
	switch v := blk.(type) {
	case Heading:
		tag := "h3"
		if v.Level == 4 {
			tag = "h4"
		}
		w.str("<" + tag + ">" + v.Text + "</" + tag + ">\n")
	case Paragraph:
		if v.Class != "" {
			w.str(`<p class="` + attr(v.Class) + `">`)
		} else {
			w.str("<p>")
		}
		w.str(inlines(v.Parts...) + "</p>\n")
	case Table:
		w.table(v)
	case Image:
		w.image(v)
	case List:
		w.str("<ul>\n")
		for _, item := range v.Items {
			w.str("<li>" + item + "</li>\n")
		}
		w.str("</ul>\n")
	case PlaceholderBlock:
		w.str(`<div class="placeholder-section">` + "\n<p>" + v.Text + "</p>\n</div>\n")
	case Group:
		w.str(`<div class="` + attr(v.Class) + `">` + "\n")
		w.str("<h4>" + v.Title + "</h4>\n")
		for _, inner := range v.Blocks {
			w.block(inner)
		}
		w.str("</div>\n")
	case SignatureBlock:
		w.signatures(v)
	}
}

func (w *htmlWriter) table(t Table) {
	w.str(`<table class="details-table">` + "\n")
	if len(t.Head) > 0 {
		w.str("<thead>\n<tr>")
		for _, h := range t.Head {
			w.str("<th>" + h + "</th>")
		}
		w.str("</tr>\n</thead>\n<tbody>\n")
	}
	for _, r := range t.Rows {
		w.str("<tr>")
		for _, c := range r {
			tag := "td"
			if c.Header {
				tag = "th"
			}
			if c.Span > 1 {
				w.str("<" + tag + ` colspan="` + itoa(c.Span) + `">`)
			} else {
				w.str("<" + tag + ">")
			}
			w.str(inlines(c.Parts...) + "</" + tag + ">")
		}
		w.str("</tr>\n")
	}
	if len(t.Head) > 0 {
		w.str("</tbody>\n")
	}
	w.str("</table>\n")
}

func (w *htmlWriter) image(img Image) {
	if img.Class != "" {
		w.str(`<div class="` + attr(img.Class) + `">` + "\n")
	} else {
		w.str("<div>\n")
	}
	w.str(`<img src="` + attr(img.Src) + `" alt="` + attr(img.Alt) + `">` + "\n")
	if len(img.Caption) > 0 {
		w.str("<p>" + inlines(img.Caption...) + "</p>\n")
	}
	w.str("</div>\n")
}

func (w *htmlWriter) signatures(s SignatureBlock) {
	w.str(`<table class="details-table signature-block">` + "\n")
	w.str("<thead>\n<tr><th>Role</th><th>Name</th><th>Signature</th><th>Date</th></tr>\n</thead>\n<tbody>\n")
	for _, r := range s.Rows {
		w.str("<tr><th>" + r.Role + "</th><td>" + inlines(r.Name) +
			`</td><td><span class="signature-line">&nbsp;</span></td><td><span class="signature-line">&nbsp;</span></td></tr>` + "\n")
	}
	w.str("</tbody>\n</table>\n")
}

// inlines renders runs. Placeholder runs become placeholder spans.
func inlines(parts ...Inline) string {
	var b strings.Builder
	for _, p := range parts {
		switch {
		case p.Placeholder:
			b.WriteString(`<span class="placeholder-text">` + p.Text + "</span>")
		case p.Strong:
			b.WriteString("<strong>" + p.Text + "</strong>")
		default:
			b.WriteString(p.Text)
		}
	}
	return b.String()
}
