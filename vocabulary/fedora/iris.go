package fedora

// RelsExtNamespace is the base IRI of the rels-ext relationship ontology.
const RelsExtNamespace = "http://fedora.info/definitions/v4/rels-ext#"

// ModelNamespace is the base IRI of the Fedora content model ontology.
const ModelNamespace = "info:fedora/fedora-system:def/model#"

// DcNamespace is the Dublin Core terms namespace.
const DcNamespace = "http://purl.org/dc/terms/"

// Relationship IRIs.
const (
	PropHasConstituent  = RelsExtNamespace + "hasConstituent"
	PropIsConstituentOf = RelsExtNamespace + "isConstituentOf"
	PropHasMember       = RelsExtNamespace + "hasMember"
	PropIsMemberOf      = RelsExtNamespace + "isMemberOf"
	PropIsPartOf        = RelsExtNamespace + "isPartOf"
	PropHasModel        = ModelNamespace + "hasModel"
)

// Dublin Core IRIs not provided by semstreams.
const (
	DcDescriptionIRI = DcNamespace + "description"
	DcCreatorIRI     = DcNamespace + "creator"
	DcSubjectIRI     = DcNamespace + "subject"
	DcLanguageIRI    = DcNamespace + "language"
	DcDateIRI        = DcNamespace + "date"
)
