package resource

import (
	"errors"
	"fmt"
	"strings"

	"github.com/c360studio/semdelta/rdf"
)

// ErrEmptyID is returned when an identifier is required but empty.
var ErrEmptyID = errors.New("resource identifier is empty")

// Namespace is the base URI managed resources live under. The resource with
// identifier "foo" has the URI "<base>/foo".
type Namespace string

// URI returns the absolute URI of the resource with the given identifier.
func (n Namespace) URI(id string) (rdf.IRI, error) {
	if id == "" {
		return "", ErrEmptyID
	}
	if n == "" {
		return "", fmt.Errorf("resolve %q: namespace base URI is empty", id)
	}
	return rdf.IRI(strings.TrimSuffix(string(n), "/") + "/" + id), nil
}

// ID reverses URI. It reports false for URIs outside the namespace.
func (n Namespace) ID(uri rdf.IRI) (string, bool) {
	if n == "" {
		return "", false
	}
	prefix := strings.TrimSuffix(string(n), "/") + "/"
	id, ok := strings.CutPrefix(string(uri), prefix)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
