package mapping

import (
	"fmt"

	"github.com/c360studio/ppodgraph/lookup"
	"github.com/c360studio/ppodgraph/source"
	"github.com/c360studio/ppodgraph/vocabulary/ppod"
)

// TablesVersion identifies the revision of the field tables. Bump it when
// a column mapping changes meaning.
const TablesVersion = "2"

// Logical sheet names. Configuration maps each to a worksheet name.
const (
	SheetPersons       = "persons"
	SheetOrganizations = "organizations"
	SheetProjects      = "projects"
	SheetDatasets      = "datasets"
	SheetPrograms      = "programs"
	SheetGuidelines    = "guidelines"
	SheetTools         = "tools"
	SheetPeopleOrg     = "people_org"
	SheetPeopleProj    = "people_proj"
	SheetPeopleProgram = "people_program"
	SheetOrgGM         = "org_gm"
	SheetOrgProjGM     = "org_proj_gm"
)

// Defaults for roles without a stated position.
const (
	UnstatedRole     = "Unstated role"
	ParticipantLabel = "Participant"
)

// SheetSpec maps the rows of an entity sheet. Each row describes one
// entity identified by the KeyHeader column.
type SheetSpec struct {
	Sheet      string
	EntityType ppod.EntityType
	KeyHeader  string
	// KeyPredicate is the predicate the key value is published under when
	// entity labels are emitted.
	KeyPredicate string
	Fields       []FieldSpec
}

// RoleSpec maps a join sheet whose rows each describe a role: a person or
// organization taking part in something in some capacity.
type RoleSpec struct {
	Sheet string
	// KeyHeaders identify the participants of the role. The effective
	// label completes the role's natural key.
	KeyHeaders []string
	// LabelHeaders are consulted in order for the role's label.
	LabelHeaders []string
	LabelDefault string
	Fields       []FieldSpec
	// Owner, when set, links another entity to the role through a
	// relation named in a cell.
	Owner *RelationLink
}

// RelationLink names the subject and relation columns of a statement
// whose object is the current row's entity.
type RelationLink struct {
	SubjectHeader  string
	SubjectType    ppod.EntityType
	RelationHeader string
}

// RelationSpec maps a sheet whose rows are statements: subject, relation
// and object each come from a column.
type RelationSpec struct {
	Sheet          string
	SubjectHeader  string
	SubjectType    ppod.EntityType
	RelationHeader string
	ObjectHeader   string
	ObjectType     ppod.EntityType
}

// RelationVocabulary is the vocabulary name reported for unknown relations.
const RelationVocabulary = "relation"

// Tables is the full set of field tables.
type Tables struct {
	Version   string
	Entities  []SheetSpec
	Roles     []RoleSpec
	Relations []RelationSpec
}

// Vocabularies returns the lookup tables referenced by any field.
func (t *Tables) Vocabularies() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(fields []FieldSpec) {
		for _, f := range fields {
			if f.Kind == Lookup && !seen[f.Vocabulary] {
				seen[f.Vocabulary] = true
				out = append(out, f.Vocabulary)
			}
		}
	}
	for _, s := range t.Entities {
		add(s.Fields)
	}
	for _, r := range t.Roles {
		add(r.Fields)
	}
	return out
}

// Sheets returns every logical sheet name in processing order: entity
// sheets first, then role and relation sheets.
func (t *Tables) Sheets() []string {
	var out []string
	for _, s := range t.Entities {
		out = append(out, s.Sheet)
	}
	for _, r := range t.Roles {
		out = append(out, r.Sheet)
	}
	for _, r := range t.Relations {
		out = append(out, r.Sheet)
	}
	return out
}

// Validate checks every table against the registered vocabulary.
func (t *Tables) Validate() error {
	seenSheets := make(map[string]bool)
	checkSheet := func(name string) error {
		if name == "" {
			return &ConfigError{Sheet: "?", Err: fmt.Errorf("table has no sheet name")}
		}
		if seenSheets[name] {
			return &ConfigError{Sheet: name, Err: fmt.Errorf("sheet mapped twice")}
		}
		seenSheets[name] = true
		return nil
	}
	checkFields := func(sheet string, fields []FieldSpec) error {
		headers := make(map[string]bool)
		for _, f := range fields {
			if err := f.validate(); err != nil {
				return &ConfigError{Sheet: sheet, Field: f.Header, Err: err}
			}
			if headers[f.Header] {
				return &ConfigError{Sheet: sheet, Field: f.Header, Err: fmt.Errorf("column mapped twice")}
			}
			headers[f.Header] = true
		}
		return nil
	}

	for _, s := range t.Entities {
		if err := checkSheet(s.Sheet); err != nil {
			return err
		}
		if !s.EntityType.IsValid() {
			return &ConfigError{Sheet: s.Sheet, Err: fmt.Errorf("unknown entity type %q", s.EntityType)}
		}
		if s.KeyHeader == "" {
			return &ConfigError{Sheet: s.Sheet, Err: fmt.Errorf("no key column")}
		}
		if s.KeyPredicate != "" && !ppod.IsRecognized(s.KeyPredicate) {
			return &ConfigError{Sheet: s.Sheet, Field: s.KeyHeader, Err: fmt.Errorf("predicate %q is not registered", s.KeyPredicate)}
		}
		if err := checkFields(s.Sheet, s.Fields); err != nil {
			return err
		}
	}
	for _, r := range t.Roles {
		if err := checkSheet(r.Sheet); err != nil {
			return err
		}
		if len(r.KeyHeaders) == 0 {
			return &ConfigError{Sheet: r.Sheet, Err: fmt.Errorf("no key columns")}
		}
		if err := checkFields(r.Sheet, r.Fields); err != nil {
			return err
		}
		if r.Owner != nil && !r.Owner.SubjectType.IsValid() {
			return &ConfigError{Sheet: r.Sheet, Field: r.Owner.SubjectHeader, Err: fmt.Errorf("unknown entity type %q", r.Owner.SubjectType)}
		}
	}
	for _, r := range t.Relations {
		if err := checkSheet(r.Sheet); err != nil {
			return err
		}
		if !r.SubjectType.IsValid() || !r.ObjectType.IsValid() {
			return &ConfigError{Sheet: r.Sheet, Err: fmt.Errorf("relation endpoints must be entity types")}
		}
	}
	for _, predicate := range ppod.Relations {
		if !ppod.IsRecognized(predicate) {
			return &ConfigError{Sheet: "relations", Field: predicate, Err: fmt.Errorf("predicate is not registered")}
		}
	}
	return nil
}

// HeaderCheck is the outcome of comparing a field table with a worksheet
// header.
type HeaderCheck struct {
	// Absent lists mapped columns missing from the worksheet. They produce
	// no statements.
	Absent []string
	// Unmapped lists worksheet columns no field maps. They are ignored.
	Unmapped []string
}

// checkHeader fails when required columns are missing. Missing optional
// columns are reported in the check.
func checkHeader(sheet *source.Sheet, logical string, required, optional []string) (HeaderCheck, error) {
	var check HeaderCheck
	var missing []string
	known := make(map[string]bool)
	for _, h := range required {
		known[h] = true
		if !sheet.HasColumn(h) {
			missing = append(missing, h)
		}
	}
	for _, h := range optional {
		known[h] = true
		if !sheet.HasColumn(h) {
			check.Absent = append(check.Absent, h)
		}
	}
	for _, h := range sheet.Header {
		if !known[h] {
			check.Unmapped = append(check.Unmapped, h)
		}
	}
	if len(missing) > 0 {
		return check, &ConfigError{Sheet: logical, Err: &MissingHeadersError{Headers: missing}}
	}
	return check, nil
}

func splitFields(fields []FieldSpec) (required, optional []string) {
	for _, f := range fields {
		if f.Required {
			required = append(required, f.Header)
		} else {
			optional = append(optional, f.Header)
		}
	}
	return required, optional
}

// CheckHeader validates a worksheet against an entity sheet table.
func (s *SheetSpec) CheckHeader(sheet *source.Sheet) (HeaderCheck, error) {
	required, optional := splitFields(s.Fields)
	required = append([]string{s.KeyHeader}, required...)
	return checkHeader(sheet, s.Sheet, required, optional)
}

// CheckHeader validates a worksheet against a role sheet table.
func (r *RoleSpec) CheckHeader(sheet *source.Sheet) (HeaderCheck, error) {
	required, optional := splitFields(r.Fields)
	for _, h := range r.KeyHeaders {
		if !contains(required, h) {
			required = append(required, h)
		}
	}
	if r.Owner != nil {
		required = append(required, r.Owner.SubjectHeader, r.Owner.RelationHeader)
	}
	for _, h := range r.LabelHeaders {
		if !contains(required, h) && !contains(optional, h) {
			optional = append(optional, h)
		}
	}
	return checkHeader(sheet, r.Sheet, required, optional)
}

// CheckHeader validates a worksheet against a relation sheet table.
func (r *RelationSpec) CheckHeader(sheet *source.Sheet) (HeaderCheck, error) {
	return checkHeader(sheet, r.Sheet, []string{r.SubjectHeader, r.RelationHeader, r.ObjectHeader}, nil)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// DefaultTables returns the field tables for the PPOD spreadsheet.
func DefaultTables() *Tables {
	return &Tables{
		Version: TablesVersion,
		Entities: []SheetSpec{
			personTable(),
			organizationTable(),
			projectTable(),
			datasetTable(),
			programTable(),
			guidelineTable(),
			toolTable(),
		},
		Roles: []RoleSpec{
			peopleOrgTable(),
			peopleProjTable(),
			peopleProgramTable(),
			orgProjGMTable(),
		},
		Relations: []RelationSpec{
			orgGMTable(),
		},
	}
}

func personTable() SheetSpec {
	return SheetSpec{
		Sheet:        SheetPersons,
		EntityType:   ppod.EntityTypePerson,
		KeyHeader:    "Full Name",
		KeyPredicate: ppod.PersonName,
		Fields: []FieldSpec{
			literal("Last Name", ppod.PersonLastName),
			literal("First Name", ppod.PersonFirstName),
			literal("Email", ppod.PersonEmail),
			literal("Phone", ppod.PersonPhone),
			lookupField("Issues", ppod.TopicIssue, lookup.IssueTable).Multi(),
			literal("Notes", ppod.DescNote),
			useCase("usecaseConservation"),
			useCase("usecaseMeat"),
			useCase("usecaseSac"),
			useCase("usecaseSCAG"),
			useCase("usecaseEcuador"),
			useCase("usecaseBayAreaRAMP"),
		},
	}
}

func organizationTable() SheetSpec {
	return SheetSpec{
		Sheet:        SheetOrganizations,
		EntityType:   ppod.EntityTypeOrganization,
		KeyHeader:    "Organization",
		KeyPredicate: ppod.DescTitle,
		Fields: []FieldSpec{
			literal("Alias", ppod.DescAlias),
			ref("isPartOf", ppod.OrgPartOf, ppod.EntityTypeOrganization).Multi(),
			ref("isMemberOf", ppod.OrgMemberOf, ppod.EntityTypeOrganization).Multi(),
			lookupField("County", ppod.GeoCounty, lookup.CountyTable).Multi(),
			lookupField("Ecoregion", ppod.GeoEcoregion, lookup.EcoregionTable).Multi(),
			lookupField("hasGeography", ppod.GeoFeature, "geofeature").Multi(),
			lookupField("hasOrgType", ppod.OrgType, "orgtype").Multi(),
			ref("Partners", ppod.OrgPartner, ppod.EntityTypeOrganization).Multi(),
			ref("Funding", ppod.FundingFundedBy, ppod.EntityTypeOrganization).Multi(),
			lookupField("hasOrgActivity", ppod.OrgActivity, "orgactivity").Multi(),
			lookupField("Issues", ppod.TopicIssue, lookup.IssueTable).Multi(),
			link("URL", ppod.DescURL).Multi(),
			literal("Contact", ppod.DescContact),
			literal("Taxa", ppod.TopicTaxa).Multi(),
			lookupField("Land Cover - CWHR", ppod.TopicHabitat, lookup.HabitatTable).Multi(),
			lookupField("Commodity", ppod.TopicCommodity, "commodity").Multi(),
			literal("Ecological Process", ppod.TopicEcologicalProcess),
			ref("GM_Name", ppod.OrgGuideline, ppod.EntityTypeGuideline).Multi(),
			useCase("usecaseConservation"),
			useCase("usecaseMeat"),
			useCase("usecaseSac"),
			useCase("usecaseSCAG"),
			useCase("usecaseEcuador"),
		},
	}
}

func projectTable() SheetSpec {
	return SheetSpec{
		Sheet:        SheetProjects,
		EntityType:   ppod.EntityTypeProject,
		KeyHeader:    "Project",
		KeyPredicate: ppod.DescTitle,
		Fields: []FieldSpec{
			literal("Alias", ppod.DescAlias),
			ref("isPartOf", ppod.OrgPartOf, ppod.EntityTypeProject).Multi(),
			lookupField("ProjType", ppod.ProjectType, "projtype").Multi(),
			ref("ProjProg", ppod.ProjectProgram, ppod.EntityTypeProgram).Multi(),
			ref("Organization (Lead)", ppod.ProjectLeadOrg, ppod.EntityTypeOrganization).Multi(),
			ref("Organization (Funding)", ppod.FundingAgentFor, ppod.EntityTypeOrganization).Multi(),
			ref("OrgFundProg", ppod.FundingVehicle, ppod.EntityTypeProgram).Multi(),
			literal("Lead Individual", ppod.ProjectLeadIndividual),
			ref("Partners", ppod.ProjectAffiliatedOrg, ppod.EntityTypeOrganization).Multi(),
			literal("Location", ppod.GeoLocatedIn),
			lookupField("County", ppod.GeoCounty, lookup.CountyTable).Multi(),
			lookupField("Ecoregion", ppod.GeoEcoregion, lookup.EcoregionTable).Multi(),
			literal("Watershed", ppod.GeoWatershed),
			lookupField("Issues", ppod.TopicIssue, lookup.IssueTable).Multi(),
			link("has description", ppod.DescDetails),
			literal("Indicators", ppod.TopicIndicator),
			ref("inDataset", ppod.ProjectInputOf, ppod.EntityTypeDataset).Multi(),
			ref("outDataset", ppod.ProjectOutputOf, ppod.EntityTypeDataset).Multi(),
			literal("Strategies", ppod.TopicStrategy).Multi(),
			link("URL", ppod.DescURL).Multi(),
			literal("Taxa", ppod.TopicTaxa).Multi(),
			lookupField("Land Cover - CWHR", ppod.TopicHabitat, lookup.HabitatTable).Multi(),
			literal("Ecological Process", ppod.TopicEcologicalProcess),
			typed("Start Year", ppod.TimeStartYear, ppod.XSDGYear),
			typed("End Year", ppod.TimeEndYear, ppod.XSDGYear),
			ref("Funding", ppod.FundingFundedBy, ppod.EntityTypeOrganization).Multi(),
			typed("Latitude", ppod.GeoLatitude, ppod.XSDDecimal),
			typed("Longitude", ppod.GeoLongitude, ppod.XSDDecimal),
			link("FSL doc", ppod.DescFSLDoc),
			useCase("Use Case (Meat)"),
			useCase("Use Case (EPA)"),
			useCase("Use Case (JPA)"),
		},
	}
}

func datasetTable() SheetSpec {
	return SheetSpec{
		Sheet:        SheetDatasets,
		EntityType:   ppod.EntityTypeDataset,
		KeyHeader:    "Name",
		KeyPredicate: ppod.DescTitle,
		Fields: []FieldSpec{
			ref("Organization (Created By)", ppod.RelationCreatedBy, ppod.EntityTypeOrganization),
			lookupField("Issues", ppod.TopicIssue, lookup.IssueTable).Multi(),
			ref("GM_Name", ppod.GuidelineMandatedBy, ppod.EntityTypeGuideline).Multi(),
			link("URL", ppod.DescURL),
			useCase("Use Case (Meat)"),
			useCase("Use Case (JPA)"),
			useCase("Use Case (EPA)"),
		},
	}
}

func programTable() SheetSpec {
	return SheetSpec{
		Sheet:        SheetPrograms,
		EntityType:   ppod.EntityTypeProgram,
		KeyHeader:    "Program",
		KeyPredicate: ppod.DescTitle,
		Fields: []FieldSpec{
			literal("Alias", ppod.DescAlias),
			lookupField("ProgType", ppod.ProgramType, "progtype").Multi(),
			ref("Organization", ppod.ProjectLeadOrg, ppod.EntityTypeOrganization).Multi(),
			ref("Partners", ppod.ProjectAffiliatedOrg, ppod.EntityTypeOrganization).Multi(),
			lookupField("Issues", ppod.TopicIssue, lookup.IssueTable).Multi(),
			literal("Lead Individual", ppod.ProjectLeadIndividual),
			ref("GM_Name", ppod.OrgGuideline, ppod.EntityTypeGuideline).Multi(),
			lookupField("County", ppod.GeoCounty, lookup.CountyTable).Multi(),
			lookupField("Ecoregion", ppod.GeoEcoregion, lookup.EcoregionTable).Multi(),
			link("URL", ppod.DescURL).Multi(),
			literal("Taxa", ppod.TopicTaxa).Multi(),
			useCase("Use Case (Meat)"),
			useCase("Use Case (EPA)"),
			useCase("Use Case (JPA)"),
			useCase("Use Case (SCAG)"),
		},
	}
}

func guidelineTable() SheetSpec {
	return SheetSpec{
		Sheet:        SheetGuidelines,
		EntityType:   ppod.EntityTypeGuideline,
		KeyHeader:    "GM_Name",
		KeyPredicate: ppod.DescTitle,
		Fields: []FieldSpec{
			literal("Alias", ppod.DescAlias),
			lookupField("GMType", ppod.GuidelineType, "gmtype").Multi(),
			typed("Year", ppod.DescDate, ppod.XSDGYear),
			lookupField("Issues", ppod.TopicIssue, lookup.IssueTable).Multi(),
			lookupField("GovLevel", ppod.GuidelineGovLevel, "govlevel").Multi(),
			lookupField("Counties", ppod.GeoCounty, lookup.CountyTable).Multi(),
			lookupField("Ecoregions", ppod.GeoEcoregion, lookup.EcoregionTable).Multi(),
			link("URL", ppod.DescURL),
			literal("Taxa", ppod.TopicTaxa),
			lookupField("Land Cover - CWHR", ppod.TopicHabitat, lookup.HabitatTable).Multi(),
			literal("Ecological Process", ppod.TopicEcologicalProcess),
			useCase("Use Case (Meat)"),
			useCase("Use Case (EPA)"),
		},
	}
}

func toolTable() SheetSpec {
	return SheetSpec{
		Sheet:        SheetTools,
		EntityType:   ppod.EntityTypeTool,
		KeyHeader:    "Tool",
		KeyPredicate: ppod.DescTitle,
		Fields: []FieldSpec{
			literal("Alias", ppod.DescAlias),
			ref("Organization", ppod.RelationCreatedBy, ppod.EntityTypeOrganization),
			lookupField("Issues", ppod.TopicIssue, lookup.IssueTable).Multi(),
			ref("inDataset", ppod.RelationHasInput, ppod.EntityTypeDataset).Multi(),
			ref("outDataset", ppod.RelationHasOutput, ppod.EntityTypeDataset).Multi(),
			literal("ToolDetails", ppod.DescReferences),
			link("URL", ppod.DescURL),
		},
	}
}

func peopleOrgTable() RoleSpec {
	position := literal("Position (Verbatim)", ppod.DescTitle)
	position.Fallback = []string{"Position (Type)"}
	position.Default = UnstatedRole
	return RoleSpec{
		Sheet:        SheetPeopleOrg,
		KeyHeaders:   []string{"Full Name", "Organization"},
		LabelHeaders: []string{"Position (Verbatim)", "Position (Type)"},
		LabelDefault: UnstatedRole,
		Fields: []FieldSpec{
			ref("Full Name", ppod.RoleParticipant, ppod.EntityTypePerson).Require(),
			ref("Organization", ppod.RoleOf, ppod.EntityTypeOrganization).Require(),
			position,
			lookupField("Position (Type)", ppod.RolePositionType, "positiontype").Multi(),
			typed("Year (Start)", ppod.TimeStartYear, ppod.XSDGYear),
			typed("Year (End)", ppod.TimeEndYear, ppod.XSDGYear),
		},
	}
}

func peopleProjTable() RoleSpec {
	role := literal("ProjRole", ppod.RoleHasRole)
	role.Default = UnstatedRole
	return RoleSpec{
		Sheet:        SheetPeopleProj,
		KeyHeaders:   []string{"Full Name", "Project"},
		LabelHeaders: []string{"ProjRole"},
		LabelDefault: ParticipantLabel,
		Fields: []FieldSpec{
			ref("Full Name", ppod.RoleParticipant, ppod.EntityTypePerson).Require(),
			ref("Project", ppod.RoleInvolvedIn, ppod.EntityTypeProject).Require(),
			role,
		},
	}
}

func peopleProgramTable() RoleSpec {
	role := literal("Role", ppod.RoleHasRole)
	role.Default = UnstatedRole
	return RoleSpec{
		Sheet:        SheetPeopleProgram,
		KeyHeaders:   []string{"Full Name", "Program"},
		LabelHeaders: []string{"Role", "Role (Type)"},
		LabelDefault: ParticipantLabel,
		Fields: []FieldSpec{
			ref("Full Name", ppod.RoleParticipant, ppod.EntityTypePerson).Require(),
			ref("Program", ppod.RoleInvolvedIn, ppod.EntityTypeProgram).Require(),
			role,
			link("Role (Type)", ppod.RoleType),
			typed("Year (Start)", ppod.TimeStartYear, ppod.XSDGYear),
			typed("Year (End)", ppod.TimeEndYear, ppod.XSDGYear),
		},
	}
}

func orgProjGMTable() RoleSpec {
	return RoleSpec{
		Sheet:        SheetOrgProjGM,
		KeyHeaders:   []string{"Organization", "Project"},
		LabelHeaders: []string{"OrgProjRelation"},
		LabelDefault: ParticipantLabel,
		Fields: []FieldSpec{
			ref("Organization", ppod.RoleParticipant, ppod.EntityTypeOrganization).Require(),
			lookupField("OrgProjRelation", ppod.RolePositionType, "orgprojrelation"),
			ref("Project", ppod.RoleInvolvedIn, ppod.EntityTypeProject).Require(),
		},
		Owner: &RelationLink{
			SubjectHeader:  "GM_Name",
			SubjectType:    ppod.EntityTypeGuideline,
			RelationHeader: "orgGMRelation",
		},
	}
}

func orgGMTable() RelationSpec {
	return RelationSpec{
		Sheet:          SheetOrgGM,
		SubjectHeader:  "Organization",
		SubjectType:    ppod.EntityTypeOrganization,
		RelationHeader: "orgGMRelation",
		ObjectHeader:   "GM_Name",
		ObjectType:     ppod.EntityTypeGuideline,
	}
}
