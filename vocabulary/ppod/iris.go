package ppod

// TermsNamespace is the base IRI for PPOD instances and locally minted
// vocabulary terms.
const TermsNamespace = "https://raw.githubusercontent.com/adhollander/FSLschemas/main/CA_PPODterms.ttl#"

// SupportNamespace is the base IRI for PPOD-specific properties.
const SupportNamespace = "https://raw.githubusercontent.com/adhollander/FSLschemas/main/fsisupp.owl#"

// Issue namespaces hold the sustainability issue terms referenced by the
// Issues (Integrated) and Issues (Component) sheets.
const (
	IntegratedIssueNamespace = "https://raw.githubusercontent.com/adhollander/FSLschemas/main/sustsource.owl#"
	ComponentIssueNamespace  = "https://raw.githubusercontent.com/adhollander/FSLschemas/main/sustsourceindiv.rdf#"
)

// Standard namespaces.
const (
	RDFNamespace     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace    = "http://www.w3.org/2000/01/rdf-schema#"
	XSDNamespace     = "http://www.w3.org/2001/XMLSchema#"
	FOAFNamespace    = "http://xmlns.com/foaf/0.1/"
	DCTermsNamespace = "http://purl.org/dc/terms/"
	SKOSNamespace    = "http://www.w3.org/2004/02/skos/core#"
	OrgNamespace     = "http://www.w3.org/ns/org#"
	VIVONamespace    = "http://vivoweb.org/ontology/core#"
	OBONamespace     = "http://purl.obolibrary.org/obo/"
	FRBRNamespace    = "http://iflastandards.info/ns/fr/frbr/frbrer/"
	DBpediaNamespace = "http://dbpedia.org/ontology/"
	DINGONamespace   = "https://w3id.org/dingo#"
	FRAPONamespace   = "http://purl.org/cerif/frapo/"
	PoderNamespace   = "http://dev.poderopedia.com/vocab/"
	GeoNamespace     = "http://www.w3.org/2003/01/geo/wgs84_pos#"
	SDSNamespace     = "http://www.sdsconsortium.org/schemas/sds-okn.owl#"
	WikidataEntity   = "http://www.wikidata.org/entity/"
)

// Class IRIs for the spreadsheet entity types.
const (
	ClassPerson       = FOAFNamespace + "Person"
	ClassOrganization = FOAFNamespace + "Organization"
	ClassProject      = VIVONamespace + "Project"
	ClassDataset      = VIVONamespace + "Dataset"
	ClassProgram      = VIVONamespace + "Program"
	ClassGuideline    = SDSNamespace + "BestPracticesAndMandates"
	ClassTool         = SDSNamespace + "Tool"

	ClassIntegratedIssue = IntegratedIssueNamespace + "IntegratedIssue"
	ClassComponentIssue  = IntegratedIssueNamespace + "ComponentIssue"
)

// XSD datatypes used for typed literals.
const (
	XSDInteger = XSDNamespace + "integer"
	XSDDecimal = XSDNamespace + "decimal"
	XSDGYear   = XSDNamespace + "gYear"
)

// Prefixes returns the namespace prefixes bound in serialized output.
func Prefixes() map[string]string {
	return map[string]string{
		"rdf":     RDFNamespace,
		"rdfs":    RDFSNamespace,
		"xsd":     XSDNamespace,
		"foaf":    FOAFNamespace,
		"dcterms": DCTermsNamespace,
		"skos":    SKOSNamespace,
		"org":     OrgNamespace,
		"vivo":    VIVONamespace,
		"obo":     OBONamespace,
		"frbr":    FRBRNamespace,
		"dbpedia": DBpediaNamespace,
		"dg":      DINGONamespace,
		"frapo":   FRAPONamespace,
		"poder":   PoderNamespace,
		"geo":     GeoNamespace,
		"sds":     SDSNamespace,
		"wd":      WikidataEntity,
		"fslp":    TermsNamespace,
		"fsls":    SupportNamespace,
		"sust":    IntegratedIssueNamespace,
		"susti":   ComponentIssueNamespace,
	}
}
