package testutil

import (
	"github.com/alexanderramin/bfmp/internal/domain"
	"github.com/alexanderramin/bfmp/internal/form"
)

// StateOption adjusts a form builder before the state is taken.
type StateOption func(*form.Builder)

func WithText(id, text string) StateOption {
	return func(b *form.Builder) { b.SetText(id, text) }
}

func WithChecked(id string, checked bool) StateOption {
	return func(b *form.Builder) { b.SetChecked(id, checked) }
}

func WithFiles(id string, files ...form.File) StateOption {
	return func(b *form.Builder) { b.SetFiles(id, files...) }
}

// WithCoating appends an AFC item, reusing the protected first item when it
// is still blank.
func WithCoating(fields map[string]string) StateOption {
	return func(b *form.Builder) { addItem(b, form.ListAFC, fields) }
}

func WithGrowthSystem(fields map[string]string) StateOption {
	return func(b *form.Builder) { addItem(b, form.ListMGPS, fields) }
}

func addItem(b *form.Builder, prefix string, fields map[string]string) {
	pos := b.Items(prefix)
	if !itemBlank(b, prefix, pos) {
		pos, _ = b.AppendItem(prefix)
	}
	for name, v := range fields {
		_ = b.SetItemText(prefix, pos, name, v)
	}
}

func itemBlank(b *form.Builder, prefix string, pos int) bool {
	l, _ := form.PlanSchema().List(prefix)
	st := b.State()
	for _, f := range l.Fields {
		if v, ok := st.Value(form.ItemKey(prefix, f.ID, pos)); ok && !domain.IsBlank(v.Text) {
			return false
		}
	}
	return true
}

// NewEmptyPlanState returns a fresh form: no values, one blank item per list.
func NewEmptyPlanState(opts ...StateOption) form.State {
	b := form.NewBuilder(form.PlanSchema())
	for _, opt := range opts {
		opt(b)
	}
	return b.State()
}

// NewCompletePlanState returns a form with every required field filled and
// one coating, so presence validation passes.
func NewCompletePlanState(opts ...StateOption) form.State {
	b := form.NewBuilder(form.PlanSchema())
	for id, v := range completeFields {
		b.SetText(id, v)
	}
	addItem(b, form.ListAFC, map[string]string{
		form.ItemProductName:  "Intersmooth 7460HS",
		form.ItemManufacturer: "International Paint",
		form.ItemType:         "Self-polishing copolymer",
		form.ItemServiceLife:  "5",
	})
	for _, opt := range opts {
		opt(b)
	}
	return b.State()
}

var completeFields = map[string]string{
	form.FieldVesselName:         "MV Example",
	form.FieldIMONumber:          "1234567",
	form.FieldVesselType:         "Bulk Carrier",
	form.FieldFlag:               "Panama",
	form.FieldResponsiblePerson:  "Jane Smith",
	form.FieldOperatingSpeed:     "14",
	form.FieldTradingRoutes:      "Australia to Singapore",
	form.FieldOperatingArea:      "South East Asia",
	form.FieldAFSInstallation:    "Applied at last dry-docking by the yard.",
	form.FieldInspectionSchedule: "In-water inspection every 12 months.",
	form.FieldCleaningSchedule:   "Clean when fouling rating exceeds 2.",
	form.FieldWasteManagement:    "Capture debris with a filtration system.",
	form.FieldSafetyProcedures:   "Permit to work before diving.",
	form.FieldCrewTraining:       "Annual familiarisation for deck officers.",
	form.FieldDocumentNumber:     "BFMP-001",
	form.FieldPlanFormat:         string(domain.FormatFullPlan),
}

// PlanOption adjusts PlanData fixtures.
type PlanOption func(*domain.PlanData)

func WithFormat(f domain.PlanFormat) PlanOption {
	return func(p *domain.PlanData) { p.Document.Format = f }
}

func WithVessel(name, imo string) PlanOption {
	return func(p *domain.PlanData) {
		p.Vessel.Name = name
		p.Vessel.IMO = imo
	}
}

func WithCoatings(entries ...domain.AFCEntry) PlanOption {
	return func(p *domain.PlanData) { p.Coatings = entries }
}

func WithGrowthSystems(entries ...domain.MGPSEntry) PlanOption {
	return func(p *domain.PlanData) { p.GrowthSystems = entries }
}

// NewTestPlan returns an all-empty full plan adjusted by opts.
func NewTestPlan(opts ...PlanOption) domain.PlanData {
	p := domain.PlanData{Document: domain.DocumentMeta{Format: domain.FormatFullPlan}}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
