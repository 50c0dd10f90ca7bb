// Package present turns a rendered report into something a person can read:
// a standalone print document, a PDF, or a file opened in the browser.
package present

import "strings"

// PrintStyle is the fixed print stylesheet of the standalone document.
const PrintStyle = `@page { size: A4; margin: 12mm; }
body { font-family: Arial, sans-serif; color: #333; background: #fff; }
.report-preview { box-shadow: none !important; border: none !important; max-width: 100% !important; margin: 0 !important; padding: 0 !important; }
.report-header { border-bottom: 2px solid #ddd; margin-bottom: 12px; padding-bottom: 8px; }
img { max-width: 100% !important; height: auto !important; }
table { page-break-inside: avoid; border-collapse: collapse; width: 100%; }
h2, h3 { page-break-after: avoid; }
.diagram-image { page-break-inside: avoid; }
.page-break { page-break-after: always; break-after: page; }
th, td { border: 1px solid #d1d5db; padding: 8px; text-align: left; }
th { background: #f8fafc; }
ul { padding-left: 1.1rem; }
.placeholder-text { color: #555; font-style: italic; }`

// DefaultPrintTitle is the <title> of print documents.
const DefaultPrintTitle = "Biofouling Management Plan"

// PrintDocument wraps a report fragment in a standalone HTML document.
func PrintDocument(fragment, title string) string {
	if strings.TrimSpace(title) == "" {
		title = DefaultPrintTitle
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString(`<meta charset="utf-8" />` + "\n")
	b.WriteString("<title>" + title + "</title>\n")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1" />` + "\n")
	b.WriteString("<style>\n" + PrintStyle + "\n</style>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString(fragment)
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
