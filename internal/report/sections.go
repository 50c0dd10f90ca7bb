package report

import (
	"fmt"

	"github.com/alexanderramin/bfmp/internal/domain"
)

// Section anchors.
const (
	IDIntro          = "intro"
	IDVessel         = "vessel"
	IDOwner          = "owner"
	IDRevision       = "revision"
	IDOperating      = "operating"
	IDNiche          = "niche"
	IDAFS            = "afs"
	IDInstallation   = "installation"
	IDCertification  = "certification"
	IDInspection     = "inspection"
	IDCleaning       = "cleaning"
	IDMonitoring     = "monitoring"
	IDWaste          = "waste"
	IDSafety         = "safety"
	IDTraining       = "training"
	IDCommunications = "communications"
	IDReferences     = "references"
	IDRecordBook     = "recordbook"
)

var registry = []sectionDef{
	{id: IDIntro, title: "Introduction / Plan Overview", build: introSection},
	{id: IDVessel, title: "Vessel Particulars", build: vesselSection},
	{id: IDOwner, title: "Owner and Operator Details", build: ownerSection},
	{id: IDRevision, title: "Record of Revision of the BFMP", toc: "Record of Revision", build: revisionSection},
	{id: IDOperating, title: "Operating Profile", build: operatingSection},
	{id: IDNiche, title: "Hull and Niche Areas Where Biofouling is Most Likely to Accumulate", toc: "Hull and Niche Areas", build: nicheSection},
	{id: IDAFS, title: "Description of the Anti-fouling Systems (AFS)", toc: "Anti-fouling Systems (AFS)", build: afsSection},
	{id: IDInstallation, title: "Installation of Anti-fouling Systems", build: installationSection},
	{id: IDCertification, title: "Certification and Approval", build: certificationSection},
	{id: IDInspection, title: "Inspection Schedule", build: inspectionSection},
	{id: IDCleaning, title: "Cleaning Schedule", build: cleaningSection},
	{id: IDMonitoring, title: "Monitoring of Biofouling Risk Parameters and Contingency Actions", toc: "Monitoring of Biofouling Risk Parameters", build: monitoringSection},
	{id: IDWaste, title: "Capture and Disposal of Waste", build: wasteSection},
	{id: IDSafety, title: "Safety Procedures for the Vessel and Crew", toc: "Safety Procedures", build: safetySection},
	{id: IDTraining, title: "Crew Training and Familiarisation", build: trainingSection},
	{id: IDCommunications, title: "Communication and Reporting", build: communicationsSection},
	{id: IDReferences, title: "References", build: referencesSection},
	{id: IDRecordBook, title: "Biofouling Record Book", part: PartRecordBook, build: recordBookSection},
}

// Table cell helpers.
func th(label string) Cell { return Cell{Header: true, Parts: []Inline{text(label)}} }
func td(in Inline) Cell { return Cell{Parts: []Inline{in}} }
func tdSpan(in Inline, span int) Cell { return Cell{Parts: []Inline{in}, Span: span} }
func row(cells ...Cell) []Cell { return cells }
func grid(rows ...[]Cell) Table { return Table{Rows: rows} }
func note(s string) Paragraph { return Paragraph{Parts: []Inline{{Text: s, Placeholder: true}}} }
func plain(s string) Paragraph { return para(text(s)) }
func slot(v, guidance string) Paragraph { return para(value(v, guidance)) }

func introSection(b *builder) []Block {
	v := b.data.Vessel
	return []Block{
		plain("This Biofouling Management Plan has been developed to comply with the International Maritime Organization's Guidelines for the Control and Management of Ships' Biofouling to Minimise the Transfer of Invasive Aquatic Species (IMO Resolution MEPC.207(62), as revised by Resolution MEPC.378(80)) and Australian national guidelines based on the Biosecurity Act 2015."),
		plain("Biofouling is the accumulation of aquatic organisms such as microorganisms, plants, and animals on surfaces and structures immersed in or exposed to the aquatic environment. Biofouling represents a significant pathway for the introduction and spread of invasive aquatic species, which can harm local ecosystems, impact human health, and cause economic damage."),
		plain("The purpose of this plan is to provide guidance on vessel-specific biofouling management measures to minimise the transfer of invasive aquatic species. This plan details operational practices and measures to be implemented to manage biofouling risks for the vessel."),
		b.sub(1, "Vessel Applicability"),
		para(
			text("This Biofouling Management Plan applies specifically to the vessel "),
			value(v.Name, "Vessel name must be entered in the Vessel Details section"),
			text(", IMO "),
			value(v.IMO, "IMO number must be entered in the Vessel Details section"),
			text("."),
		),
		b.sub(2, "Plan Review Schedule"),
		para(
			text("This Biofouling Management Plan shall be reviewed and updated at intervals not exceeding five years, following major modifications to underwater surfaces, or when there is a significant change in the vessel's operational profile. The "),
			value(b.data.Revision.ResponsiblePosition, "responsible person"),
			text(" is responsible for ensuring reviews are conducted."),
		),
	}
}

func vesselSection(b *builder) []Block {
	v := b.data.Vessel
	return []Block{grid(
		row(th("Vessel Name"), td(value(v.Name, "Enter the full name of the vessel as shown on registration documents.")),
			th("IMO Number"), td(value(v.IMO, "Enter the unique IMO ship identification number."))),
		row(th("Date of Construction"), td(b.date(v.ConstructionDate, "Enter the date when the vessel was built.")),
			th("Vessel Type"), td(value(v.Type, "Indicate the vessel type (e.g., Cargo Ship, Tanker, etc.)"))),
		row(th("Gross Tonnage"), td(value(v.GrossTonnage, "Enter the vessel's gross tonnage.")),
			th("Beam (m)"), td(value(v.Beam, "Enter the vessel's maximum width in meters."))),
		row(th("Length Overall (m)"), td(value(v.Length, "Enter the vessel's total length in meters.")),
			th("Flag State"), td(value(v.Flag, "Enter the country of vessel registration."))),
		row(th("Maximum Draft (m)"), td(value(v.MaxDraft, "Enter the vessel's maximum operating draft in meters.")),
			th("Minimum Draft (m)"), td(value(v.MinDraft, "Enter the vessel's minimum operating draft in meters."))),
	)}
}

func ownerSection(b *builder) []Block {
	o := b.data.Owner
	return []Block{grid(
		row(th("Registered Owner"), tdSpan(value(o.OwnerName, "Enter the name of the registered owner of the vessel."), 3)),
		row(th("Owner Address"), tdSpan(value(o.OwnerAddress, "Enter the registered owner's postal address."), 3)),
		row(th("Operator / Manager"), tdSpan(value(o.OperatorName, "Enter the name of the company operating or managing the vessel."), 3)),
		row(th("Operator Contact Number"), td(value(o.OperatorContact, "Enter a contact telephone number for the operator.")),
			th("Operator Email"), td(value(o.OperatorEmail, "Enter a contact email address for the operator."))),
	)}
}

func revisionSection(b *builder) []Block {
	r := b.data.Revision
	return []Block{grid(
		row(th("Date of Last Dry-docking"), td(b.date(r.LastDrydock, "Enter the date of the vessel's most recent dry-dock.")),
			th("Date of Next Scheduled Dry-docking"), td(b.date(r.NextDrydock, "Enter the date of the vessel's next planned dry-dock."))),
		row(th("Revision Number"), td(value(r.Number, "Enter the BFMP revision identifier (e.g., Rev. 1).")),
			th("Revision Date"), td(b.date(r.Date, "Enter the date of this BFMP revision."))),
		row(th("Responsible Person"), td(value(r.ResponsiblePerson, "Enter the name of the person responsible for BFMP implementation.")),
			th("Position/Role"), td(value(r.ResponsiblePosition, "Enter the role/position of the responsible person (e.g., Chief Officer)."))),
	)}
}

func operatingSection(b *builder) []Block {
	o := b.data.Operating
	return []Block{
		grid(
			row(th("Typical Operating Speed"), td(withUnit(o.Speed, "knots", "Enter the vessel's typical operating speed in knots.")),
				th("In-service Period"), td(withUnit(o.InServicePeriod, "months", "Enter the typical duration between dry-dockings in months."))),
			row(th("Primary Operating Area"), td(value(o.OperatingArea, "Specify the primary geographical region(s) where the vessel operates.")),
				th("AFS Suitable for Operating Profile"), td(value(o.AFSSuitability, "Indicate whether the current anti-fouling systems are appropriate for the vessel's operating profile."))),
		),
		b.sub(1, "Typical Trading Routes"),
		slot(o.TradingRoutes, "Detail the vessel's regular trading routes, including common ports of call."),
		b.sub(2, "Climate Zones"),
		slot(o.ClimateZones, "Specify the climate zones where the vessel operates (e.g., tropical, temperate, polar)."),
	}
}

// NoDiagramsText is shown in place of the niche-area diagrams.
const NoDiagramsText = "No diagrams provided. Diagrams of the vessel showing hull and niche areas should be inserted here. These diagrams are important for identifying high-risk areas for biofouling accumulation and for planning inspection and cleaning activities."

func nicheSection(b *builder) []Block {
	n := b.data.Niche
	blocks := []Block{
		b.sub(1, "Description of Hull and Niche Areas"),
		slot(n.Description, "Provide a detailed inventory of the vessel's hull and niche areas where biofouling can accumulate. Include specific information about sea chests, bow thrusters, propellers, rudders and other niche areas."),
		b.sub(2, "Location of Areas Where Biofouling is Most Likely to Accumulate"),
	}
	if len(n.Diagrams) == 0 {
		return append(blocks, Paragraph{Class: "placeholder-section", Parts: []Inline{text(NoDiagramsText)}})
	}
	for i, src := range n.Diagrams {
		blocks = append(blocks, Image{
			Src:     src,
			Alt:     fmt.Sprintf("Vessel Diagram %d", i+1),
			Caption: []Inline{strong(fmt.Sprintf("Diagram %d:", i+1)), text(" Areas where biofouling is likely to accumulate.")},
			Class:   "diagram-image",
		})
	}
	return blocks
}

// Explanations used when a repeated list has no entries.
const (
	NoCoatingsText = "No anti-fouling coating information has been provided. Anti-fouling coatings are critical for managing biofouling accumulation on the vessel's hull and other wetted surfaces. Please add information about all anti-fouling systems used on the vessel including product names, manufacturers, types, service life, and application areas."
	NoMGPSText     = "No Marine Growth Prevention System (MGPS) information has been provided. MGPS are important for protecting internal seawater systems from biofouling. If your vessel has MGPS installed, please provide details including manufacturer, model, type, and installation locations."
)

func afsSection(b *builder) []Block {
	blocks := []Block{b.sub(1, "Anti-fouling Coatings")}
	if len(b.data.Coatings) == 0 {
		blocks = append(blocks, PlaceholderBlock{Text: NoCoatingsText})
	}
	for i, c := range b.data.Coatings {
		blocks = append(blocks, coatingGroup(i+1, c))
	}

	blocks = append(blocks, b.sub(2, "Marine Growth Prevention Systems"))
	if len(b.data.GrowthSystems) == 0 {
		blocks = append(blocks, PlaceholderBlock{Text: NoMGPSText})
	}
	for i, m := range b.data.GrowthSystems {
		blocks = append(blocks, growthSystemGroup(i+1, m))
	}
	return blocks
}

func coatingGroup(n int, c domain.AFCEntry) Group {
	return Group{
		Class: "afs-section",
		Title: fmt.Sprintf("Anti-fouling Coating %d: %s", n, domain.CoalesceStr(c.ProductName, "Unspecified Coating")),
		Blocks: []Block{grid(
			row(th("Product Name"), td(value(c.ProductName, "Enter the specific anti-fouling coating product name as per manufacturer specification.")),
				th("Manufacturer"), td(value(c.Manufacturer, "Specify the manufacturer of the anti-fouling coating system."))),
			row(th("Type of AFC"), td(value(c.Type, "Indicate coating type (e.g., Self-Polishing Copolymer, Hard Coating, etc.)")),
				th("Intended Service Life"), td(withUnit(c.ServiceLife, "years", "Specify expected service life in years based on manufacturer recommendations."))),
			row(th("Locations Applied"), tdSpan(value(c.Locations, "Identify specific areas of the vessel where this coating is applied (hull areas, niche areas, etc.)"), 3)),
			row(th("Suitable Operating Profiles"), tdSpan(value(c.SuitableProfile, "Document operating conditions for which this coating is suitable (speed, activity/inactivity periods)."), 3)),
			row(th("Maintenance Regime"), tdSpan(value(c.Maintenance, "Detail the recommended maintenance procedures and schedule for this coating system."), 3)),
		)},
	}
}

func growthSystemGroup(n int, m domain.MGPSEntry) Group {
	return Group{
		Class: "mgps-section",
		Title: fmt.Sprintf("Marine Growth Prevention System %d: %s", n, domain.CoalesceStr(m.Model, "Unspecified System")),
		Blocks: []Block{grid(
			row(th("Manufacturer"), td(value(m.Manufacturer, "Enter the manufacturer of the MGPS system.")),
				th("Model"), td(value(m.Model, "Specify the model name/number of the MGPS."))),
			row(th("Type of MGPS"), td(value(m.Type, "Indicate the type of system (Anodic, Impressed Current, Ultrasonic, etc.)")),
				th("Service Life"), td(withUnit(m.ServiceLife, "years", "Specify expected service life in years."))),
			row(th("Locations Installed"), tdSpan(value(m.Locations, "Detail where this MGPS is installed on the vessel (sea chests, internal piping, etc.)"), 3)),
			row(th("Operating Manual Available"), tdSpan(value(m.Manual, "Indicate if an operating manual is available and where it is kept."), 3)),
		)},
	}
}

func installationSection(b *builder) []Block {
	return []Block{slot(b.data.Installation, "Provide comprehensive details about the installation of all anti-fouling systems on the vessel. Include information about which specific systems are applied to different areas of the vessel, coverage extent, and any areas without anti-fouling protection.")}
}

func certificationSection(b *builder) []Block {
	c := b.data.Certification
	blocks := []Block{
		b.sub(1, "IAFS Certificate"),
		para(strong("Certificate Number:"), text(" "), value(c.IAFSNumber, "Enter the International Anti-fouling System Certificate number if applicable.")),
		para(strong("Issue Date:"), text(" "), b.date(c.IAFSIssueDate, "Enter the IAFS certificate issue date.")),
	}
	if domain.IsBlank(c.IAFSFile) {
		blocks = append(blocks, note("Upload a copy of the IAFS certificate (image formats recommended) to include here."))
	} else {
		blocks = append(blocks, Image{Src: c.IAFSFile, Alt: "IAFS Certificate", Class: "certificate-image"})
	}
	return append(blocks,
		b.sub(2, "Classification and Plan Approval"),
		grid(
			row(th("Classification Society"), tdSpan(value(c.ClassSociety, "Enter the classification society the vessel is entered with."), 3)),
			row(th("Plan Approved By"), td(value(c.ApprovalAuthority, "Enter the administration or recognised organisation that approved this plan, if applicable.")),
				th("Approval Date"), td(b.date(c.ApprovalDate, "Enter the date this plan was approved."))),
		),
	)
}

func inspectionSection(b *builder) []Block {
	return []Block{slot(b.data.Maintenance.InspectionSchedule, "Document the vessel's planned inspection schedule for monitoring biofouling. Specify areas to be inspected, inspection frequency, methods, and recordkeeping requirements.")}
}

func cleaningSection(b *builder) []Block {
	return []Block{slot(b.data.Maintenance.CleaningSchedule, "Detail the vessel's proactive cleaning schedule, including routine cleaning activities and methods used for different vessel areas.")}
}

func monitoringSection(b *builder) []Block {
	r := b.data.Risk
	return []Block{
		b.sub(1, "Biofouling Risk Parameters"),
		slot(r.Parameters, "List the specific parameters that indicate increased biofouling risk (e.g., extended port stays, reduced speed operations, warm waters, freshwater exposure)."),
		b.sub(2, "Evaluation Deviations and Deviation Limits"),
		slot(r.DeviationLimits, "Define the specific limits for each risk parameter that would trigger contingency actions."),
		b.sub(3, "Contingency Actions"),
		slot(r.ContingencyActions, "Specify actions to be taken when parameters exceed defined limits. Include decision criteria, responsible parties, and timelines."),
		b.sub(4, "Long-term Actions"),
		slot(r.LongTermActions, "Detail longer-term management responses following repeated or significant deviations (e.g., increase inspection frequency, update anti-fouling systems, revise the BFMP)."),
	}
}

func wasteSection(b *builder) []Block {
	return []Block{slot(b.data.Procedures.WasteManagement, "Document procedures for the capture, treatment, and disposal of biofouling waste in accordance with local and international regulations.")}
}

func safetySection(b *builder) []Block {
	return []Block{slot(b.data.Procedures.SafetyProcedures, "Detail safety procedures related to the operation and maintenance of anti-fouling systems and cleaning equipment. Include personal protective equipment requirements, operational restrictions, hazard identification, and emergency procedures.")}
}

func trainingSection(b *builder) []Block {
	return []Block{
		slot(b.data.CrewTraining, "Outline the training program for crew members involved in biofouling management activities. Specify training content, frequency, who delivers the training, and which crew members require training."),
		b.sub(1, "Training Register"),
		Table{
			Head: []string{"Crew Member Name", "Position", "Training Date", "Trainer"},
			Rows: [][]Cell{row(tdSpan(text("Training register to be maintained by vessel management."), 4))},
		},
	}
}

func communicationsSection(b *builder) []Block {
	c := b.data.Communications
	return []Block{
		grid(row(th("Reporting Contact"), tdSpan(value(c.ReportingContact, "Enter the shore-side contact to whom biofouling incidents and inspection results are reported."), 3))),
		b.sub(1, "Reporting Procedures"),
		slot(c.ReportingProcedures, "Describe how biofouling observations, deviations and contingency actions are reported to the operator and to port state authorities, including pre-arrival reporting requirements."),
	}
}

// StandardReferences are cited by every plan.
var StandardReferences = []string{
	"IMO Resolution MEPC.207(62): 2011 Guidelines for the Control and Management of Ships' Biofouling to Minimize the Transfer of Invasive Aquatic Species",
	"IMO Resolution MEPC.378(80): 2023 Guidelines for the Control and Management of Ships' Biofouling to Minimize the Transfer of Invasive Aquatic Species",
	"International Convention on the Control of Harmful Anti-fouling Systems on Ships, 2001 (AFS Convention)",
	"Australian Biosecurity Act 2015 and the Australian Biofouling Management Requirements",
	"New Zealand Craft Risk Management Standard: Biofouling on Vessels Arriving to New Zealand",
}

func referencesSection(b *builder) []Block {
	blocks := []Block{
		plain("This plan has been prepared with reference to the following documents:"),
		List{Items: append([]string(nil), StandardReferences...)},
		b.sub(1, "Additional References"),
		slot(b.data.References, "List any company procedures, class rules or port state requirements referenced by this plan."),
	}
	if !b.data.Document.IncludeSignatureBlock {
		return blocks
	}
	return append(blocks,
		b.sub(2, "Plan Approval"),
		SignatureBlock{Rows: []SignatureRow{
			{Role: "Prepared by", Name: value(b.data.Revision.ResponsiblePerson, "Name of the person responsible for this plan")},
			{Role: "Approved by", Name: value(b.data.Certification.ApprovalAuthority, "Name of the approving authority")},
		}},
	)
}

// RecordBookActivities are the activities the record book must capture.
var RecordBookActivities = []string{
	"Cleaning activities",
	"Inspections",
	"Operation outside expected profile",
	"AFC maintenance/service/damage",
	"MGPS maintenance/service/downtime",
}

func recordBookSection(b *builder) []Block {
	return []Block{
		plain("The Biofouling Record Book (BFRB) must be used in conjunction with this Biofouling Management Plan. The BFRB demonstrates that the BFMP has been implemented through records of relevant biofouling activities."),
		plain("The BFRB must be maintained from the date of BFMP implementation and retained for the entire service life of the vessel. Entries in the BFRB must be signed and dated by the officer or officers in charge."),
		Heading{Level: 3, Text: "Record Book Template"},
		Table{
			Head: []string{"Date", "Activity Type", "Location", "Details", "Person in Charge"},
			Rows: [][]Cell{row(tdSpan(text("Record of activities to be maintained here."), 5))},
		},
		para(strong("Activities to be recorded include:")),
		List{Items: append([]string(nil), RecordBookActivities...)},
	}
}
