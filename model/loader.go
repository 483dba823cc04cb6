package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SchemaFile is the YAML layout of a schema file:
//
//	classes:
//	  - class: Book
//	    properties:
//	      - name: library_id
//	        predicate: fedora.rels.has_constituent
//	        reference: true
//	        multivalue: false
//	      - name: title
//	        predicate: fedora.dc.title
type SchemaFile struct {
	Classes []ClassConfig `yaml:"classes"`
}

// ClassConfig declares one class.
type ClassConfig struct {
	Class      string           `yaml:"class"`
	Properties []PropertyConfig `yaml:"properties"`
}

// PropertyConfig declares one property. Multivalue defaults to true when
// omitted.
type PropertyConfig struct {
	Name       string `yaml:"name"`
	Predicate  string `yaml:"predicate"`
	Multivalue *bool  `yaml:"multivalue,omitempty"`
	Reference  bool   `yaml:"reference,omitempty"`
	Lang       string `yaml:"lang,omitempty"`
	Datatype   string `yaml:"datatype,omitempty"`
}

// LoadSchemas reads a schema file and returns a registry of its classes.
func LoadSchemas(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	return ParseSchemas(data)
}

// ParseSchemas builds a registry from YAML schema data.
func ParseSchemas(data []byte) (*Registry, error) {
	var file SchemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse schema file: %w", err)
	}

	schemas := make([]*Schema, 0, len(file.Classes))
	for _, c := range file.Classes {
		props := make([]Property, 0, len(c.Properties))
		for _, pc := range c.Properties {
			p := Property{
				Name:       pc.Name,
				Predicate:  pc.Predicate,
				Multivalue: true,
				Reference:  pc.Reference,
				Lang:       pc.Lang,
				Datatype:   pc.Datatype,
			}
			if pc.Multivalue != nil {
				p.Multivalue = *pc.Multivalue
			}
			props = append(props, p)
		}
		schemas = append(schemas, NewSchema(c.Class, props...))
	}

	return NewRegistry(schemas...)
}
