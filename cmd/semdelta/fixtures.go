package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/semdelta/model"
	"github.com/c360studio/semdelta/resource"
	"github.com/c360studio/semdelta/storage"
)

// ResourceFile describes one resource and the attribute changes to apply
// to it:
//
//	class: Book
//	id: book1
//	persisted: true
//	content: |
//	  <http://localhost:8983/fedora/rest/test/book1> <http://purl.org/dc/terms/title> "Old" .
//	changes:
//	  - attribute: title
//	    values: [New]
//	  - attribute: description
//	    clear: true
type ResourceFile struct {
	Class     string          `yaml:"class"`
	ID        string          `yaml:"id,omitempty"`
	Persisted bool            `yaml:"persisted,omitempty"`
	Content   string          `yaml:"content,omitempty"`
	Changes   []AttributeEdit `yaml:"changes"`
}

// AttributeEdit sets or clears one attribute.
type AttributeEdit struct {
	Attribute string `yaml:"attribute"`
	Values    []any  `yaml:"values,omitempty"`
	Clear     bool   `yaml:"clear,omitempty"`
}

// LoadResourceFile reads a resource file.
func LoadResourceFile(path string) (*ResourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resource file: %w", err)
	}
	var f ResourceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse resource file %s: %w", path, err)
	}
	if f.Class == "" {
		return nil, fmt.Errorf("resource file %s: class is required", path)
	}
	if f.Persisted && f.ID == "" {
		return nil, fmt.Errorf("resource file %s: persisted resources need an id", path)
	}
	return &f, nil
}

// Seed stores the file's content when the store holds none for the
// resource. Lookup failures other than missing content are returned.
func (f *ResourceFile) Seed(ctx context.Context, store storage.ContentStore) error {
	if f.Content == "" || f.ID == "" || store == nil {
		return nil
	}
	_, err := store.Get(ctx, f.ID)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("check stored content of %s: %w", f.ID, err)
	}
	return store.Put(ctx, f.ID, []byte(f.Content))
}

// Resource builds the resource and applies the edits in file order.
func (f *ResourceFile) Resource(ctx context.Context, reg *model.Registry, ns resource.Namespace, content resource.ContentSource) (*resource.Resource, error) {
	schema, ok := reg.Get(f.Class)
	if !ok {
		return nil, fmt.Errorf("unknown class %q", f.Class)
	}

	var r *resource.Resource
	if f.Persisted {
		var err error
		r, err = resource.Open(schema, ns, f.ID, content)
		if err != nil {
			return nil, err
		}
		if err := r.Reload(ctx); err != nil {
			return nil, err
		}
	} else {
		opts := []resource.Option{resource.WithContent(content)}
		if f.ID != "" {
			opts = append(opts, resource.WithID(f.ID))
		}
		r = resource.New(schema, ns, opts...)
	}

	for _, edit := range f.Changes {
		var err error
		if edit.Clear {
			err = r.Clear(edit.Attribute)
		} else {
			err = r.Set(edit.Attribute, edit.Values...)
		}
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// expandPatterns resolves doublestar patterns to a sorted list of files.
func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
