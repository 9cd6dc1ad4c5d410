package ppod

import (
	"fmt"
	"strings"

	"github.com/c360studio/semstreams/vocabulary"
	"github.com/c360studio/semstreams/vocabulary/bfo"
	"github.com/c360studio/semstreams/vocabulary/cco"
)

// EntityType is the kind of a spreadsheet record.
type EntityType string

// Entity type constants. Person, Organization, Project and Dataset are the
// four core record kinds; the others come from the supporting sheets.
const (
	// EntityTypePerson is a row of the People sheet.
	EntityTypePerson EntityType = "person"
	// EntityTypeOrganization is a row of the Organizations sheet.
	EntityTypeOrganization EntityType = "organization"
	// EntityTypeProject is a row of the Projects sheet.
	EntityTypeProject EntityType = "project"
	// EntityTypeDataset is a row of the Datasets sheet.
	EntityTypeDataset EntityType = "dataset"
	// EntityTypeProgram is a row of the Programs sheet.
	EntityTypeProgram EntityType = "program"
	// EntityTypeGuideline is a row of the Guidelines_Mandates sheet.
	EntityTypeGuideline EntityType = "guideline"
	// EntityTypeTool is a row of the Tools sheet.
	EntityTypeTool EntityType = "tool"
	// EntityTypeRole is a participation built from a join sheet row.
	EntityTypeRole EntityType = "role"
)

// EntityTypes lists every entity type in processing order.
var EntityTypes = []EntityType{
	EntityTypePerson,
	EntityTypeOrganization,
	EntityTypeProject,
	EntityTypeDataset,
	EntityTypeProgram,
	EntityTypeGuideline,
	EntityTypeTool,
	EntityTypeRole,
}

// ClassMap maps entity types to the class asserted with rdf:type.
var ClassMap = map[EntityType]string{
	EntityTypePerson:       ClassPerson,
	EntityTypeOrganization: ClassOrganization,
	EntityTypeProject:      ClassProject,
	EntityTypeDataset:      ClassDataset,
	EntityTypeProgram:      ClassProgram,
	EntityTypeGuideline:    ClassGuideline,
	EntityTypeTool:         ClassTool,
	EntityTypeRole:         bfo.Role,
}

// CodeMap maps entity types to the identifier code prefixed to instance IRIs.
var CodeMap = map[EntityType]string{
	EntityTypePerson:       "per",
	EntityTypeOrganization: "org",
	EntityTypeProject:      "prj",
	EntityTypeDataset:      "dat",
	EntityTypeProgram:      "prg",
	EntityTypeGuideline:    "gmt",
	EntityTypeTool:         "tol",
	EntityTypeRole:         "rol",
}

// ClassLabels are the rdfs:label values emitted for the entity classes
// that are not described by an external ontology document.
var ClassLabels = map[string]string{
	bfo.Role: "Role",
}

// BFOClassMap maps entity types to BFO class IRIs.
// Use this for BFO profile RDF export.
var BFOClassMap = map[EntityType]string{
	// Agents → IndependentContinuant
	EntityTypePerson:       bfo.IndependentContinuant,
	EntityTypeOrganization: bfo.IndependentContinuant,

	// Work carried out over time → Process
	EntityTypeProject: bfo.Process,

	// Information entities → GenericallyDependentContinuant
	EntityTypeDataset:   bfo.GenericallyDependentContinuant,
	EntityTypeProgram:   bfo.GenericallyDependentContinuant,
	EntityTypeGuideline: bfo.GenericallyDependentContinuant,
	EntityTypeTool:      bfo.GenericallyDependentContinuant,
}

// CCOClassMap maps entity types to CCO class IRIs.
// Use this for CCO profile RDF export.
var CCOClassMap = map[EntityType]string{
	EntityTypePerson:    cco.Person,
	EntityTypeProject:   cco.Act,
	EntityTypeDataset:   cco.InformationContentEntity,
	EntityTypeProgram:   cco.PlanSpecification,
	EntityTypeGuideline: cco.DirectiveInformationContentEntity,
	EntityTypeTool:      cco.SoftwareCode,
}

// PROVClassMap maps entity types to PROV-O class IRIs.
var PROVClassMap = map[EntityType]string{
	EntityTypePerson:       vocabulary.ProvPerson,
	EntityTypeOrganization: vocabulary.ProvAgent,
	EntityTypeProject:      vocabulary.ProvActivity,
	EntityTypeDataset:      vocabulary.ProvEntity,
	EntityTypeGuideline:    vocabulary.ProvEntity,
	EntityTypeTool:         vocabulary.ProvEntity,
}

// String returns the entity type name.
func (t EntityType) String() string {
	return string(t)
}

// IsValid returns true if the entity type is known.
func (t EntityType) IsValid() bool {
	_, ok := CodeMap[t]
	return ok
}

// Code returns the identifier code for the entity type, or "" if unknown.
func (t EntityType) Code() string {
	return CodeMap[t]
}

// ClassIRI returns the class asserted for instances of the entity type.
func (t EntityType) ClassIRI() string {
	return ClassMap[t]
}

// ParseEntityType parses an entity type name, ignoring case and
// surrounding whitespace.
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown entity type %q", s)
	}
	return t, nil
}

// UseCase is a project use case flagged by an "X" in a dedicated column.
type UseCase struct {
	IRI   string
	Label string
}

// UseCases maps the use case column headers to their terms. Several sheets
// spell the same use case differently.
var UseCases = map[string]UseCase{
	"usecaseConservation": {TermsNamespace + "usecaseConservation", "Conservation use case"},
	"usecaseMeat":         {TermsNamespace + "usecaseMeat", "Meat use case"},
	"usecaseSac":          {TermsNamespace + "usecaseSac", "Sacramento case"},
	"usecaseSCAG":         {TermsNamespace + "usecaseSCAG", "SCAG use case"},
	"usecaseEcuador":      {TermsNamespace + "usecaseEcuador", "Ecuador use case"},
	"usecaseBayAreaRAMP":  {TermsNamespace + "BayAreaRAMP", "Bay Area RAMP use case"},
	"Use Case (Meat)":     {TermsNamespace + "usecaseMeat", "Meat use case"},
	"Use Case (EPA)":      {TermsNamespace + "usecaseEPA", "EPA use case"},
	"Use Case (JPA)":      {TermsNamespace + "usecaseJPA", "JPA use case"},
	"Use Case (SCAG)":     {TermsNamespace + "usecaseSCAG", "SCAG use case"},
}

// Relations maps the relation names used in the OrgGM and OrgProjGM sheets
// to predicates.
var Relations = map[string]string{
	"Created":              RelationCreated,
	"Was Created By":       RelationCreatedBy,
	"Implements":           RelationImplements,
	"Mandates":             RelationMandates,
	"Is Bound By":          RelationBoundBy,
	"Funds Established By": FundingVehicle,
	"Is Certified By":      RelationCertifiedBy,
	"Enforces":             RelationEnforces,
}
