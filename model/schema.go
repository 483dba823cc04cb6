// Package model provides class schemas for managed resources.
// A schema declares, in order, the attributes a resource class has and the
// predicate each one is stored under. Predicates are named by semstreams
// vocabulary key (fedora.dc.title) or by absolute IRI, and are resolved to
// IRIs when a change set is built.
package model

import (
	"fmt"
	"net/url"

	"github.com/c360studio/semdelta/changeset"
	"github.com/c360studio/semdelta/rdf"
	"github.com/c360studio/semstreams/vocabulary"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Property declares one attribute of a class.
type Property struct {
	// Name is the attribute name used by callers.
	Name string `yaml:"name" json:"name"`

	// Predicate is a vocabulary key or an absolute IRI.
	Predicate string `yaml:"predicate" json:"predicate"`

	// Multivalue attributes hold a list of values. Defaults to true.
	Multivalue bool `yaml:"multivalue" json:"multivalue"`

	// Reference attributes hold identifiers of other managed resources.
	Reference bool `yaml:"reference,omitempty" json:"reference,omitempty"`

	// Lang is attached to literal values when set.
	Lang string `yaml:"lang,omitempty" json:"lang,omitempty"`

	// Datatype is attached to literal values when set.
	Datatype string `yaml:"datatype,omitempty" json:"datatype,omitempty"`
}

// PropertyOption adjusts a Property built with Prop.
type PropertyOption func(*Property)

// Single makes the property single-valued.
func Single() PropertyOption {
	return func(p *Property) { p.Multivalue = false }
}

// Reference marks the property as a link to another managed resource.
func Reference() PropertyOption {
	return func(p *Property) { p.Reference = true }
}

// Lang tags literal values with a language.
func Lang(tag string) PropertyOption {
	return func(p *Property) { p.Lang = tag }
}

// Datatype types literal values.
func Datatype(iri string) PropertyOption {
	return func(p *Property) { p.Datatype = iri }
}

// Prop declares a multivalued property.
func Prop(name, predicate string, opts ...PropertyOption) Property {
	p := Property{Name: name, Predicate: predicate, Multivalue: true}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Validate checks the declaration.
func (p Property) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("property name is required")
	}
	if p.Predicate == "" {
		return fmt.Errorf("property %s: predicate is required", p.Name)
	}
	if p.Lang != "" && p.Datatype != "" {
		return fmt.Errorf("property %s: lang and datatype are mutually exclusive", p.Name)
	}
	if p.Reference && (p.Lang != "" || p.Datatype != "") {
		return fmt.Errorf("property %s: reference properties cannot carry lang or datatype", p.Name)
	}
	return nil
}

// Schema is the ordered set of properties of one resource class.
type Schema struct {
	class string
	props *orderedmap.OrderedMap[string, Property]
}

// NewSchema creates a schema. Later declarations of the same name replace
// earlier ones but keep the original position.
func NewSchema(class string, props ...Property) *Schema {
	s := &Schema{
		class: class,
		props: orderedmap.New[string, Property](),
	}
	for _, p := range props {
		s.props.Set(p.Name, p)
	}
	return s
}

// Class returns the class name.
func (s *Schema) Class() string {
	return s.class
}

// Fields returns the property names in declaration order.
func (s *Schema) Fields() []string {
	fields := make([]string, 0, s.props.Len())
	for pair := s.props.Oldest(); pair != nil; pair = pair.Next() {
		fields = append(fields, pair.Key)
	}
	return fields
}

// Property returns the declaration for name.
func (s *Schema) Property(name string) (Property, bool) {
	return s.props.Get(name)
}

// Validate checks every property and that each predicate resolves.
func (s *Schema) Validate() error {
	if s.class == "" {
		return fmt.Errorf("schema class is required")
	}
	for pair := s.props.Oldest(); pair != nil; pair = pair.Next() {
		if err := pair.Value.Validate(); err != nil {
			return fmt.Errorf("class %s: %w", s.class, err)
		}
		if _, ok := PredicateIRI(pair.Value.Predicate); !ok {
			return fmt.Errorf("class %s: property %s: unknown predicate %q", s.class, pair.Key, pair.Value.Predicate)
		}
	}
	return nil
}

// ResolvePredicate implements changeset.PredicateResolver.
func (s *Schema) ResolvePredicate(attribute string) (changeset.Mapping, bool) {
	p, ok := s.props.Get(attribute)
	if !ok {
		return changeset.Mapping{}, false
	}
	iri, ok := PredicateIRI(p.Predicate)
	if !ok {
		return changeset.Mapping{}, false
	}
	return changeset.Mapping{
		Predicate: iri,
		Lang:      p.Lang,
		Datatype:  rdf.IRI(p.Datatype),
		Reference: p.Reference,
	}, true
}

// PredicateIRI resolves a vocabulary key or absolute IRI to a predicate IRI.
// Registered vocabulary keys win over IRI parsing.
func PredicateIRI(predicate string) (rdf.IRI, bool) {
	if meta := vocabulary.GetPredicateMetadata(predicate); meta != nil && meta.StandardIRI != "" {
		return rdf.IRI(meta.StandardIRI), true
	}
	u, err := url.Parse(predicate)
	if err != nil || !u.IsAbs() {
		return "", false
	}
	return rdf.IRI(predicate), true
}
