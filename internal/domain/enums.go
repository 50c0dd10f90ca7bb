package domain

import "strings"

// PlanFormat selects which top-level parts of the generated report are included.
type PlanFormat string

const (
	FormatFullPlan PlanFormat = "Full Plan"
	FormatBFMPOnly PlanFormat = "BFMP Only"
	FormatBFRBOnly PlanFormat = "BFRB Only"
)

// PlanFormats lists the accepted plan format literals in display order.
var PlanFormats = []PlanFormat{FormatFullPlan, FormatBFMPOnly, FormatBFRBOnly}

// ParsePlanFormat maps a raw selector value to a PlanFormat. Anything other
// than the three exact literals, including the empty string, is a full plan.
func ParsePlanFormat(raw string) PlanFormat {
	switch PlanFormat(raw) {
	case FormatBFMPOnly:
		return FormatBFMPOnly
	case FormatBFRBOnly:
		return FormatBFRBOnly
	default:
		return FormatFullPlan
	}
}

// IncludesPlanBody reports whether the management plan sections are rendered.
func (f PlanFormat) IncludesPlanBody() bool {
	return f != FormatBFRBOnly
}

// IncludesRecordBook reports whether the record book appendix is rendered.
func (f PlanFormat) IncludesRecordBook() bool {
	return f != FormatBFMPOnly
}

type RenderTarget string

const (
	TargetFragment RenderTarget = "fragment"
	TargetPrint    RenderTarget = "print"
	TargetPDF      RenderTarget = "pdf"
)

// ParseRenderTarget validates a target name.
func ParseRenderTarget(raw string) (RenderTarget, bool) {
	switch RenderTarget(strings.ToLower(strings.TrimSpace(raw))) {
	case TargetFragment:
		return TargetFragment, true
	case TargetPrint:
		return TargetPrint, true
	case TargetPDF:
		return TargetPDF, true
	default:
		return "", false
	}
}

type RenderStatus string

const (
	RenderCompleted RenderStatus = "completed"
	RenderAborted   RenderStatus = "aborted"
	RenderFailed    RenderStatus = "failed"
)

// ParseRenderStatus validates a ledger status name.
func ParseRenderStatus(raw string) (RenderStatus, bool) {
	switch s := RenderStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case RenderCompleted, RenderAborted, RenderFailed:
		return s, true
	default:
		return "", false
	}
}
