package ppod

import "github.com/c360studio/semstreams/vocabulary"

// Meta predicates describe resources rather than spreadsheet fields.
const (
	// MetaType asserts the class of an entity (rdf:type).
	MetaType = "ppod.meta.type"

	// MetaLabel is the human readable name of any resource (rdfs:label).
	MetaLabel = "ppod.meta.label"

	// MetaSubClassOf aligns a class with an upper ontology class.
	MetaSubClassOf = "ppod.meta.subclass"
)

// Descriptive predicates shared by most sheets.
const (
	// DescTitle is the name of an organization, project, program, guideline,
	// dataset or tool.
	DescTitle = "ppod.desc.title"

	// DescAlias is an alternative name.
	DescAlias = "ppod.desc.alias"

	// DescDate is the year a guideline or mandate was issued.
	DescDate = "ppod.desc.date"

	// DescReferences points at documentation for a tool.
	DescReferences = "ppod.desc.references"

	// DescNote is a free-text note.
	DescNote = "ppod.desc.note"

	// DescURL links an entity to its web presence.
	DescURL = "ppod.desc.url"

	// DescContact is contact information.
	DescContact = "ppod.desc.contact"

	// DescDetails links a project to a description page.
	DescDetails = "ppod.desc.details"

	// DescFSLDoc links a project to its Food Systems Lab document.
	DescFSLDoc = "ppod.desc.fsl_doc"

	// DescUseCase links an entity to a use case it was collected for.
	DescUseCase = "ppod.desc.use_case"
)

// Geography predicates.
const (
	GeoCounty    = "ppod.geo.county"
	GeoEcoregion = "ppod.geo.ecoregion"
	GeoFeature   = "ppod.geo.feature"
	GeoLocatedIn = "ppod.geo.located_in"
	GeoWatershed = "ppod.geo.watershed"
	GeoLatitude  = "ppod.geo.latitude"
	GeoLongitude = "ppod.geo.longitude"
)

// Topic predicates describe what an entity is concerned with.
const (
	TopicIssue             = "ppod.topic.issue"
	TopicTaxa              = "ppod.topic.taxa"
	TopicHabitat           = "ppod.topic.habitat"
	TopicCommodity         = "ppod.topic.commodity"
	TopicEcologicalProcess = "ppod.topic.ecological_process"
	TopicIndicator         = "ppod.topic.indicator"
	TopicStrategy          = "ppod.topic.strategy"
)

// Organization predicates.
const (
	OrgPartOf    = "ppod.org.part_of"
	OrgMemberOf  = "ppod.org.member_of"
	OrgType      = "ppod.org.type"
	OrgPartner   = "ppod.org.partner"
	OrgActivity  = "ppod.org.activity"
	OrgGuideline = "ppod.org.guideline"
)

// Funding predicates.
const (
	FundingFundedBy = "ppod.funding.funded_by"
	FundingAgentFor = "ppod.funding.agent_for"
	FundingVehicle  = "ppod.funding.vehicle"
)

// Project and program predicates.
const (
	ProjectType           = "ppod.project.type"
	ProjectProgram        = "ppod.project.program"
	ProjectLeadOrg        = "ppod.project.lead_org"
	ProjectLeadIndividual = "ppod.project.lead_individual"
	ProjectAffiliatedOrg  = "ppod.project.affiliated_org"
	ProjectInputOf        = "ppod.project.input_of"
	ProjectOutputOf       = "ppod.project.output_of"
	ProgramType           = "ppod.program.type"
)

// Temporal predicates.
const (
	TimeStartYear = "ppod.time.start_year"
	TimeEndYear   = "ppod.time.end_year"
)

// Person predicates.
const (
	PersonName      = "ppod.person.name"
	PersonLastName  = "ppod.person.last_name"
	PersonFirstName = "ppod.person.first_name"
	PersonEmail     = "ppod.person.email"
	PersonPhone     = "ppod.person.phone"
)

// Role predicates connect a role built from a join sheet row to the
// entities taking part in it.
const (
	RoleParticipant  = "ppod.role.participant"
	RoleOf           = "ppod.role.of"
	RolePositionType = "ppod.role.position_type"
	RoleInvolvedIn   = "ppod.role.involved_in"
	RoleHasRole      = "ppod.role.has_role"
	RoleType         = "ppod.role.type"
)

// Guideline and mandate predicates.
const (
	GuidelineType       = "ppod.guideline.type"
	GuidelineGovLevel   = "ppod.guideline.gov_level"
	GuidelineMandatedBy = "ppod.guideline.mandated_by"
)

// Relation predicates used by the OrgGM and OrgProjGM sheets, where the
// relation itself is a cell value.
const (
	RelationCreated     = "ppod.relation.created"
	RelationCreatedBy   = "ppod.relation.created_by"
	RelationImplements  = "ppod.relation.implements"
	RelationMandates    = "ppod.relation.mandates"
	RelationBoundBy     = "ppod.relation.bound_by"
	RelationCertifiedBy = "ppod.relation.certified_by"
	RelationEnforces    = "ppod.relation.enforces"
	RelationHasInput    = "ppod.relation.has_input"
	RelationHasOutput   = "ppod.relation.has_output"
)

// registered holds predicate names in registration order so output that
// describes the vocabulary is stable between runs.
var registered []string

func register(name, description, dataType, iri string) {
	vocabulary.Register(name,
		vocabulary.WithDescription(description),
		vocabulary.WithDataType(dataType),
		vocabulary.WithIRI(iri))
	registered = append(registered, name)
}

func registerMetaPredicates() {
	register(MetaType, "type", "iri", RDFNamespace+"type")
	register(MetaLabel, "label", "string", RDFSNamespace+"label")
	register(MetaSubClassOf, "subclass of", "iri", RDFSNamespace+"subClassOf")
}

func registerDescriptivePredicates() {
	register(DescTitle, "title", "string", DCTermsNamespace+"title")
	register(DescAlias, "alias", "string", SKOSNamespace+"altLabel")
	register(DescDate, "date", "string", DCTermsNamespace+"date")
	register(DescReferences, "references", "string", DCTermsNamespace+"references")
	register(DescNote, "note", "string", SupportNamespace+"FSI_000243")
	register(DescURL, "has URL", "iri", PoderNamespace+"hasURL")
	register(DescContact, "contact", "string", VIVONamespace+"contactInformation")
	register(DescDetails, "project details", "iri", SupportNamespace+"projDetails")
	register(DescFSLDoc, "FSL doc", "iri", SupportNamespace+"FSLdoc")
	register(DescUseCase, "in use case", "iri", SupportNamespace+"usecase")
}

func registerGeoPredicates() {
	register(GeoCounty, "in county", "iri", SupportNamespace+"inCounty")
	register(GeoEcoregion, "in ecoregion", "iri", SupportNamespace+"inEcoregion")
	register(GeoFeature, "associated geography", "iri", SupportNamespace+"assocGeo")
	register(GeoLocatedIn, "located in", "string", OBONamespace+"RO_0001025")
	register(GeoWatershed, "in watershed", "string", SupportNamespace+"inWatershed")
	register(GeoLatitude, "latitude", "float", GeoNamespace+"lat")
	register(GeoLongitude, "longitude", "float", GeoNamespace+"long")
}

func registerTopicPredicates() {
	register(TopicIssue, "related sustainability issue", "iri", SupportNamespace+"FSI_000239")
	register(TopicTaxa, "taxa", "string", SupportNamespace+"taxa")
	register(TopicHabitat, "habitat type", "iri", SupportNamespace+"habitatType")
	register(TopicCommodity, "commodity", "iri", SupportNamespace+"commodity")
	register(TopicEcologicalProcess, "ecological process", "string", SupportNamespace+"ecologicalProcess")
	register(TopicIndicator, "has indicator", "string", SupportNamespace+"hasIndicator")
	register(TopicStrategy, "has strategy", "string", SupportNamespace+"hasStrategy")
}

func registerOrganizationPredicates() {
	register(OrgPartOf, "is part of", "entity_id", DCTermsNamespace+"isPartOf")
	register(OrgMemberOf, "is member of", "entity_id", OrgNamespace+"memberOf")
	register(OrgType, "organization type", "iri", OrgNamespace+"classification")
	register(OrgPartner, "has partner", "entity_id", VIVONamespace+"hasCollaborator")
	register(OrgActivity, "participates in", "iri", OBONamespace+"RO_0000056")
	register(OrgGuideline, "guideline/mandate name", "entity_id", SupportNamespace+"GM_Name")

	register(FundingFundedBy, "is funded by", "entity_id", FRAPONamespace+"isFundedBy")
	register(FundingAgentFor, "funding organization", "entity_id", VIVONamespace+"fundingAgentFor")
	register(FundingVehicle, "has funding vehicle", "entity_id", VIVONamespace+"hasFundingVehicle")
}

func registerProjectPredicates() {
	register(ProjectType, "project type", "iri", SupportNamespace+"projType")
	register(ProjectProgram, "occurs in", "entity_id", OBONamespace+"BFO_0000066")
	register(ProjectLeadOrg, "lead organization", "entity_id", SupportNamespace+"leadOrg")
	register(ProjectLeadIndividual, "lead individual", "string", SupportNamespace+"leadIndividual")
	register(ProjectAffiliatedOrg, "partner organization", "entity_id", VIVONamespace+"affiliatedOrganization")
	register(ProjectInputOf, "input of", "entity_id", OBONamespace+"RO_0002352")
	register(ProjectOutputOf, "output of", "entity_id", OBONamespace+"RO_0002353")
	register(ProgramType, "program type", "iri", SupportNamespace+"progType")

	register(TimeStartYear, "start year", "int", DBpediaNamespace+"startYear")
	register(TimeEndYear, "end year", "int", DBpediaNamespace+"endYear")
}

func registerPersonPredicates() {
	register(PersonName, "full name", "string", FOAFNamespace+"name")
	register(PersonLastName, "last name", "string", FOAFNamespace+"lastName")
	register(PersonFirstName, "first name", "string", FOAFNamespace+"firstName")
	register(PersonEmail, "email", "string", FOAFNamespace+"mbox")
	register(PersonPhone, "phone", "string", FOAFNamespace+"phone")
}

func registerRolePredicates() {
	register(RoleParticipant, "has participant", "entity_id", OBONamespace+"RO_0000057")
	register(RoleOf, "role of", "entity_id", OBONamespace+"RO_0000081")
	register(RolePositionType, "position type", "iri", SupportNamespace+"positionType")
	register(RoleInvolvedIn, "involved in", "entity_id", OBONamespace+"RO_0002331")
	register(RoleHasRole, "has role", "string", OBONamespace+"RO_0000087")
	register(RoleType, "role type", "string", SupportNamespace+"roleType")
}

func registerGuidelinePredicates() {
	register(GuidelineType, "guideline/mandate type", "iri", SupportNamespace+"gmType")
	register(GuidelineGovLevel, "government level", "iri", SupportNamespace+"govLevel")
	register(GuidelineMandatedBy, "mandated by", "entity_id", SupportNamespace+"mandatedBy")
}

func registerRelationPredicates() {
	register(RelationCreated, "creator of", "entity_id", FRBRNamespace+"P2008")
	register(RelationCreatedBy, "was created by", "entity_id", FRBRNamespace+"P2007")
	register(RelationImplements, "implements", "entity_id", DINGONamespace+"implements")
	register(RelationMandates, "mandates", "entity_id", SupportNamespace+"mandates")
	register(RelationBoundBy, "is bound by", "entity_id", SupportNamespace+"isboundby")
	register(RelationCertifiedBy, "is certified by", "entity_id", SupportNamespace+"iscertifiedby")
	register(RelationEnforces, "enforces", "entity_id", SupportNamespace+"enforces")
	register(RelationHasInput, "has input", "entity_id", OBONamespace+"RO_0002233")
	register(RelationHasOutput, "has output", "entity_id", OBONamespace+"RO_0002234")
}

func init() {
	registerMetaPredicates()
	registerDescriptivePredicates()
	registerGeoPredicates()
	registerTopicPredicates()
	registerOrganizationPredicates()
	registerProjectPredicates()
	registerPersonPredicates()
	registerRolePredicates()
	registerGuidelinePredicates()
	registerRelationPredicates()
}

// Predicates returns every registered PPOD predicate in registration order.
func Predicates() []string {
	out := make([]string, len(registered))
	copy(out, registered)
	return out
}

// IsRecognized reports whether the predicate is registered with an IRI.
func IsRecognized(predicate string) bool {
	_, ok := PredicateIRI(predicate)
	return ok
}

// PredicateIRI returns the standard IRI registered for a predicate.
func PredicateIRI(predicate string) (string, bool) {
	meta := vocabulary.GetPredicateMetadata(predicate)
	if meta == nil || meta.StandardIRI == "" {
		return "", false
	}
	return meta.StandardIRI, true
}

// PredicateLabel returns the human readable label for a predicate.
func PredicateLabel(predicate string) string {
	meta := vocabulary.GetPredicateMetadata(predicate)
	if meta == nil {
		return ""
	}
	return meta.Description
}
