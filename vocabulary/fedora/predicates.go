package fedora

import "github.com/c360studio/semstreams/vocabulary"

// Relationship predicates link a resource to other managed resources.
// Values are resource identifiers, rendered as absolute URIs.
const (
	// RelsHasConstituent links a resource to a constituent part.
	RelsHasConstituent = "fedora.rels.has_constituent"

	// RelsIsConstituentOf links a constituent back to its whole.
	RelsIsConstituentOf = "fedora.rels.is_constituent_of"

	// RelsHasMember links a collection to a member.
	RelsHasMember = "fedora.rels.has_member"

	// RelsIsMemberOf links a member to its collection.
	RelsIsMemberOf = "fedora.rels.is_member_of"

	// RelsIsPartOf links a resource to the resource it is part of.
	RelsIsPartOf = "fedora.rels.is_part_of"

	// ModelHasModel names the content model of a resource.
	ModelHasModel = "fedora.model.has_model"
)

// Descriptive predicates carry literal metadata.
const (
	// DcTitle is the resource title.
	DcTitle = "fedora.dc.title"

	// DcDescription is a free-text description.
	DcDescription = "fedora.dc.description"

	// DcCreator names the creator.
	DcCreator = "fedora.dc.creator"

	// DcSubject is a subject keyword.
	DcSubject = "fedora.dc.subject"

	// DcIdentifier is an external identifier.
	DcIdentifier = "fedora.dc.identifier"

	// DcLanguage is the language of the resource content.
	DcLanguage = "fedora.dc.language"

	// DcDate is a date associated with the resource.
	DcDate = "fedora.dc.date"
)

func init() {
	vocabulary.Register(RelsHasConstituent,
		vocabulary.WithDescription("Links a resource to one of its constituent parts"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropHasConstituent))

	vocabulary.Register(RelsIsConstituentOf,
		vocabulary.WithDescription("Links a constituent to the resource it belongs to"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropIsConstituentOf))

	vocabulary.Register(RelsHasMember,
		vocabulary.WithDescription("Links a collection to a member resource"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropHasMember))

	vocabulary.Register(RelsIsMemberOf,
		vocabulary.WithDescription("Links a member resource to its collection"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropIsMemberOf))

	vocabulary.Register(RelsIsPartOf,
		vocabulary.WithDescription("Links a resource to the resource it is part of"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropIsPartOf))

	vocabulary.Register(ModelHasModel,
		vocabulary.WithDescription("Content model of the resource"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropHasModel))

	vocabulary.Register(DcTitle,
		vocabulary.WithDescription("Title of the resource"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(vocabulary.DcTitle))

	vocabulary.Register(DcDescription,
		vocabulary.WithDescription("Free-text description of the resource"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(DcDescriptionIRI))

	vocabulary.Register(DcCreator,
		vocabulary.WithDescription("Entity primarily responsible for the resource"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(DcCreatorIRI))

	vocabulary.Register(DcSubject,
		vocabulary.WithDescription("Topic keywords of the resource"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(DcSubjectIRI))

	vocabulary.Register(DcIdentifier,
		vocabulary.WithDescription("Unambiguous external reference to the resource"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.DcIdentifier))

	vocabulary.Register(DcLanguage,
		vocabulary.WithDescription("Language of the resource content"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(DcLanguageIRI))

	vocabulary.Register(DcDate,
		vocabulary.WithDescription("Date associated with the resource"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(DcDateIRI))
}
