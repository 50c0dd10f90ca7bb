package domain

// PlanData is an immutable snapshot of everything the report needs. Text
// leaves are "" when empty and booleans are false; image references are
// locators (paths, URLs or data URIs), never raw bytes.
type PlanData struct {
	Vessel         VesselParticulars
	Owner          OwnerOperator
	Revision       RevisionRecord
	Operating      OperatingProfile
	Niche          NicheAreas
	Coatings       []AFCEntry
	GrowthSystems  []MGPSEntry
	Installation   string
	Certification  Certification
	Maintenance    Maintenance
	Risk           RiskManagement
	Procedures     Procedures
	CrewTraining   string
	Communications Communications
	References     string
	Document       DocumentMeta
}

type VesselParticulars struct {
	Name             string
	IMO              string
	ConstructionDate string
	Type             string
	GrossTonnage     string
	Beam             string
	Length           string
	MaxDraft         string
	MinDraft         string
	Flag             string
}

type OwnerOperator struct {
	OwnerName       string
	OwnerAddress    string
	OperatorName    string
	OperatorContact string
	OperatorEmail   string
}

type RevisionRecord struct {
	LastDrydock         string
	NextDrydock         string
	Number              string
	Date                string
	ResponsiblePerson   string
	ResponsiblePosition string
}

type OperatingProfile struct {
	Speed           string
	InServicePeriod string
	TradingRoutes   string
	OperatingArea   string
	ClimateZones    string
	AFSSuitability  string
}

type NicheAreas struct {
	Description string
	Diagrams    []string
}

// AFCEntry describes one anti-fouling coating. Entries have no identity
// beyond their position in PlanData.Coatings.
type AFCEntry struct {
	ProductName     string
	Manufacturer    string
	Type            string
	ServiceLife     string
	Locations       string
	SuitableProfile string
	Maintenance     string
}

// IsEmpty reports whether every field of the entry is blank.
func (e AFCEntry) IsEmpty() bool {
	return IsBlank(e.ProductName) && IsBlank(e.Manufacturer) && IsBlank(e.Type) &&
		IsBlank(e.ServiceLife) && IsBlank(e.Locations) && IsBlank(e.SuitableProfile) &&
		IsBlank(e.Maintenance)
}

// MGPSEntry describes one marine growth prevention system.
type MGPSEntry struct {
	Manufacturer string
	Model        string
	Type         string
	ServiceLife  string
	Locations    string
	Manual       string
}

// IsEmpty reports whether every field of the entry is blank.
func (e MGPSEntry) IsEmpty() bool {
	return IsBlank(e.Manufacturer) && IsBlank(e.Model) && IsBlank(e.Type) &&
		IsBlank(e.ServiceLife) && IsBlank(e.Locations) && IsBlank(e.Manual)
}

type Certification struct {
	IAFSNumber        string
	IAFSIssueDate     string
	IAFSFile          string
	ClassSociety      string
	ApprovalAuthority string
	ApprovalDate      string
}

type Maintenance struct {
	InspectionSchedule string
	CleaningSchedule   string
}

type RiskManagement struct {
	Parameters         string
	DeviationLimits    string
	ContingencyActions string
	LongTermActions    string
}

type Procedures struct {
	WasteManagement  string
	SafetyProcedures string
}

type Communications struct {
	ReportingContact    string
	ReportingProcedures string
}

type DocumentMeta struct {
	Title                 string
	Number                string
	Revision              string
	Format                PlanFormat
	CoverPhoto            string
	CompanyLogo           string
	IncludeSignatureBlock bool
}
