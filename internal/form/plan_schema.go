package form

import "github.com/alexanderramin/bfmp/internal/domain"

const (
	SectionVesselDetails    = "vessel-details"
	SectionOperatingProfile = "operating-profile"
	SectionAntiFouling      = "anti-fouling"
	SectionManagement       = "management"
	SectionGenerate         = "generate"

	ListAFC  = "afc"
	ListMGPS = "mgps"
)

// Field identifiers shared with the wizard and snapshot files.
const (
	FieldVesselName          = "vesselName"
	FieldIMONumber           = "imoNumber"
	FieldConstructionDate    = "constructionDate"
	FieldVesselType          = "vesselType"
	FieldGrossTonnage        = "grossTonnage"
	FieldBeam                = "beam"
	FieldLength              = "length"
	FieldMaxDraft            = "maxDraft"
	FieldMinDraft            = "minDraft"
	FieldFlag                = "flag"
	FieldOwnerName           = "ownerName"
	FieldOwnerAddress        = "ownerAddress"
	FieldOperatorName        = "operatorName"
	FieldOperatorContact     = "operatorContact"
	FieldOperatorEmail       = "operatorEmail"
	FieldLastDrydock         = "lastDrydock"
	FieldNextDrydock         = "nextDrydock"
	FieldRevisionNumber      = "revisionNumber"
	FieldRevisionDate        = "revisionDate"
	FieldResponsiblePerson   = "responsiblePerson"
	FieldResponsiblePosition = "responsiblePosition"

	FieldOperatingSpeed       = "operatingSpeed"
	FieldInServicePeriod      = "inServicePeriod"
	FieldTradingRoutes        = "tradingRoutes"
	FieldOperatingArea        = "operatingArea"
	FieldClimateZones         = "climateZones"
	FieldAFSSuitability       = "afsSuitability"
	FieldNicheAreaDescription = "nicheAreaDescription"
	FieldDiagramFiles         = "diagramFiles"

	FieldIAFSNumber        = "iafsNumber"
	FieldIAFSIssueDate     = "iafsIssueDate"
	FieldIAFSFile          = "iafsFile"
	FieldClassSociety      = "classSociety"
	FieldApprovalAuthority = "approvalAuthority"
	FieldApprovalDate      = "approvalDate"
	FieldAFSInstallation   = "afsInstallation"

	FieldInspectionSchedule  = "inspectionSchedule"
	FieldCleaningSchedule    = "cleaningSchedule"
	FieldRiskParameters      = "riskParameters"
	FieldDeviationLimits     = "deviationLimits"
	FieldContingencyActions  = "contingencyActions"
	FieldLongTermActions     = "longTermActions"
	FieldWasteManagement     = "wasteManagement"
	FieldSafetyProcedures    = "safetyProcedures"
	FieldCrewTraining        = "crewTraining"
	FieldReportingContact    = "reportingContact"
	FieldReportingProcedures = "reportingProcedures"

	FieldPlanTitle             = "planTitle"
	FieldDocumentNumber        = "documentNumber"
	FieldDocumentRevision      = "documentRevision"
	FieldPlanFormat            = "planFormat"
	FieldCoverPhoto            = "coverPhoto"
	FieldCompanyLogo           = "companyLogo"
	FieldAdditionalReferences  = "additionalReferences"
	FieldIncludeSignatureBlock = "includeSignatureBlock"
)

// AFC and MGPS per-item field names.
const (
	ItemProductName     = "ProductName"
	ItemManufacturer    = "Manufacturer"
	ItemType            = "Type"
	ItemServiceLife     = "ServiceLife"
	ItemLocations       = "Locations"
	ItemSuitableProfile = "SuitableProfile"
	ItemMaintenance     = "Maintenance"
	ItemModel           = "Model"
	ItemManual          = "Manual"
)

// PlanSchema returns the form contract of the BFMP wizard.
func PlanSchema() Schema {
	formats := make([]string, 0, len(domain.PlanFormats))
	for _, f := range domain.PlanFormats {
		formats = append(formats, string(f))
	}

	vd, op, af, mg, ge := SectionVesselDetails, SectionOperatingProfile, SectionAntiFouling, SectionManagement, SectionGenerate

	return Schema{
		Sections: []Section{
			{ID: vd, Label: "Vessel Details"},
			{ID: op, Label: "Operating Profile"},
			{ID: af, Label: "Anti-fouling Systems"},
			{ID: mg, Label: "Management Procedures"},
			{ID: ge, Label: "Generate Plan"},
		},
		Fields: []Field{
			{ID: FieldVesselName, Label: "Vessel Name", Section: vd, Required: true},
			{ID: FieldIMONumber, Label: "IMO Number", Section: vd, Required: true},
			{ID: FieldConstructionDate, Label: "Date of Construction", Section: vd, Kind: KindDate},
			{ID: FieldVesselType, Label: "Vessel Type", Section: vd, Required: true},
			{ID: FieldGrossTonnage, Label: "Gross Tonnage", Section: vd},
			{ID: FieldBeam, Label: "Beam (m)", Section: vd},
			{ID: FieldLength, Label: "Length Overall (m)", Section: vd},
			{ID: FieldMaxDraft, Label: "Maximum Draft (m)", Section: vd},
			{ID: FieldMinDraft, Label: "Minimum Draft (m)", Section: vd},
			{ID: FieldFlag, Label: "Flag State", Section: vd, Required: true},
			{ID: FieldOwnerName, Label: "Registered Owner", Section: vd},
			{ID: FieldOwnerAddress, Label: "Owner Address", Section: vd, Kind: KindTextArea},
			{ID: FieldOperatorName, Label: "Operator / Manager", Section: vd},
			{ID: FieldOperatorContact, Label: "Operator Contact Number", Section: vd},
			{ID: FieldOperatorEmail, Label: "Operator Email", Section: vd},
			{ID: FieldLastDrydock, Label: "Date of Last Dry-docking", Section: vd, Kind: KindDate},
			{ID: FieldNextDrydock, Label: "Date of Next Scheduled Dry-docking", Section: vd, Kind: KindDate},
			{ID: FieldRevisionNumber, Label: "Revision Number", Section: vd},
			{ID: FieldRevisionDate, Label: "Revision Date", Section: vd, Kind: KindDate},
			{ID: FieldResponsiblePerson, Label: "Responsible Person", Section: vd, Required: true},
			{ID: FieldResponsiblePosition, Label: "Position/Role", Section: vd},

			{ID: FieldOperatingSpeed, Label: "Typical Operating Speed (knots)", Section: op, Required: true},
			{ID: FieldInServicePeriod, Label: "In-service Period (months)", Section: op},
			{ID: FieldTradingRoutes, Label: "Typical Trading Routes", Section: op, Kind: KindTextArea, Required: true},
			{ID: FieldOperatingArea, Label: "Primary Operating Area", Section: op, Required: true},
			{ID: FieldClimateZones, Label: "Climate Zones", Section: op},
			{ID: FieldAFSSuitability, Label: "AFS Suitable for Operating Profile", Section: op, Kind: KindSelect,
				Options: []string{"Yes", "No", "Partially"}},
			{ID: FieldNicheAreaDescription, Label: "Description of Hull and Niche Areas", Section: op, Kind: KindTextArea},
			{ID: FieldDiagramFiles, Label: "Vessel Diagrams", Section: op, Kind: KindFiles},

			{ID: FieldIAFSNumber, Label: "IAFS Certificate Number", Section: af},
			{ID: FieldIAFSIssueDate, Label: "IAFS Issue Date", Section: af, Kind: KindDate},
			{ID: FieldIAFSFile, Label: "IAFS Certificate Copy", Section: af, Kind: KindFile},
			{ID: FieldClassSociety, Label: "Classification Society", Section: af},
			{ID: FieldApprovalAuthority, Label: "Plan Approved By", Section: af},
			{ID: FieldApprovalDate, Label: "Approval Date", Section: af, Kind: KindDate},
			{ID: FieldAFSInstallation, Label: "Installation of Anti-fouling Systems", Section: af, Kind: KindTextArea, Required: true},

			{ID: FieldInspectionSchedule, Label: "Inspection Schedule", Section: mg, Kind: KindTextArea, Required: true},
			{ID: FieldCleaningSchedule, Label: "Cleaning Schedule", Section: mg, Kind: KindTextArea, Required: true},
			{ID: FieldRiskParameters, Label: "Biofouling Risk Parameters", Section: mg, Kind: KindTextArea},
			{ID: FieldDeviationLimits, Label: "Deviation Limits", Section: mg, Kind: KindTextArea},
			{ID: FieldContingencyActions, Label: "Contingency Actions", Section: mg, Kind: KindTextArea},
			{ID: FieldLongTermActions, Label: "Long-term Actions", Section: mg, Kind: KindTextArea},
			{ID: FieldWasteManagement, Label: "Capture and Disposal of Waste", Section: mg, Kind: KindTextArea, Required: true},
			{ID: FieldSafetyProcedures, Label: "Safety Procedures", Section: mg, Kind: KindTextArea, Required: true},
			{ID: FieldCrewTraining, Label: "Crew Training and Familiarisation", Section: mg, Kind: KindTextArea, Required: true},
			{ID: FieldReportingContact, Label: "Reporting Contact", Section: mg},
			{ID: FieldReportingProcedures, Label: "Reporting Procedures", Section: mg, Kind: KindTextArea},

			{ID: FieldPlanTitle, Label: "Plan Title", Section: ge},
			{ID: FieldDocumentNumber, Label: "Document Number", Section: ge, Required: true},
			{ID: FieldDocumentRevision, Label: "Document Revision", Section: ge},
			{ID: FieldPlanFormat, Label: "Plan Format", Section: ge, Kind: KindSelect, Required: true, Options: formats},
			{ID: FieldCoverPhoto, Label: "Cover Photo", Section: ge, Kind: KindFile},
			{ID: FieldCompanyLogo, Label: "Company Logo", Section: ge, Kind: KindFile},
			{ID: FieldAdditionalReferences, Label: "Additional References", Section: ge, Kind: KindTextArea},
			{ID: FieldIncludeSignatureBlock, Label: "Include Signature Block", Section: ge, Kind: KindCheckbox},
		},
		Lists: []List{
			{Prefix: ListAFC, Label: "Anti-fouling Coating", Section: af, Fields: []Field{
				{ID: ItemProductName, Label: "Product Name", Section: af, Required: true},
				{ID: ItemManufacturer, Label: "Manufacturer", Section: af},
				{ID: ItemType, Label: "Type of AFC", Section: af, Required: true},
				{ID: ItemServiceLife, Label: "Intended Service Life (years)", Section: af},
				{ID: ItemLocations, Label: "Locations Applied", Section: af, Kind: KindTextArea},
				{ID: ItemSuitableProfile, Label: "Suitable Operating Profiles", Section: af, Kind: KindTextArea},
				{ID: ItemMaintenance, Label: "Maintenance Regime", Section: af, Kind: KindTextArea},
			}},
			{Prefix: ListMGPS, Label: "Marine Growth Prevention System", Section: af, Fields: []Field{
				{ID: ItemManufacturer, Label: "Manufacturer", Section: af},
				{ID: ItemModel, Label: "Model", Section: af},
				{ID: ItemType, Label: "Type of MGPS", Section: af},
				{ID: ItemServiceLife, Label: "Service Life (years)", Section: af},
				{ID: ItemLocations, Label: "Locations Installed", Section: af, Kind: KindTextArea},
				{ID: ItemManual, Label: "Operating Manual Available", Section: af},
			}},
		},
	}
}
