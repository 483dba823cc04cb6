package changeset

import (
	"fmt"
	"strconv"
	"time"

	"github.com/c360studio/semdelta/rdf"
)

// object converts one attribute value to a triple object. A nil result with
// a nil error means the slot holds no value.
func (cs *ChangeSet) object(m Mapping, value any) (rdf.Term, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *string:
		if v == nil {
			return nil, nil
		}
		return cs.scalar(m, *v)
	case rdf.IRI:
		return v, nil
	case rdf.BlankNode:
		return v, nil
	case rdf.Literal:
		return checkLiteral(v)
	case Identified:
		uri, err := v.URI()
		if err != nil {
			return nil, fmt.Errorf("resolve referenced resource: %w", err)
		}
		if uri.IsEmpty() {
			return nil, nil
		}
		return uri, nil
	case string:
		return cs.scalar(m, v)
	case []byte:
		return cs.scalar(m, string(v))
	case bool:
		return literal(m, strconv.FormatBool(v))
	case int:
		return literal(m, strconv.Itoa(v))
	case int32:
		return literal(m, strconv.FormatInt(int64(v), 10))
	case int64:
		return literal(m, strconv.FormatInt(v, 10))
	case uint:
		return literal(m, strconv.FormatUint(uint64(v), 10))
	case uint32:
		return literal(m, strconv.FormatUint(uint64(v), 10))
	case uint64:
		return literal(m, strconv.FormatUint(v, 10))
	case float32:
		return literal(m, strconv.FormatFloat(float64(v), 'g', -1, 32))
	case float64:
		return literal(m, strconv.FormatFloat(v, 'g', -1, 64))
	case time.Time:
		return literal(m, v.Format(time.RFC3339Nano))
	case fmt.Stringer:
		return literal(m, v.String())
	default:
		return nil, &rdf.MalformedLiteralError{
			Value:  fmt.Sprintf("%v", v),
			Reason: fmt.Sprintf("unsupported value type %T", v),
		}
	}
}

// scalar handles string values, which are identifiers for reference
// attributes and literal text otherwise.
func (cs *ChangeSet) scalar(m Mapping, s string) (rdf.Term, error) {
	if m.Reference {
		uri, err := cs.identity.ReferenceURI(s)
		if err != nil {
			return nil, fmt.Errorf("resolve reference %q: %w", s, err)
		}
		return uri, nil
	}
	return literal(m, s)
}

func literal(m Mapping, s string) (rdf.Term, error) {
	switch {
	case m.Lang != "":
		return rdf.NewLangLiteral(s, m.Lang)
	case m.Datatype != "":
		return rdf.NewTypedLiteral(s, m.Datatype)
	default:
		return rdf.NewLiteral(s)
	}
}

func checkLiteral(l rdf.Literal) (rdf.Term, error) {
	switch {
	case l.Lang != "":
		return rdf.NewLangLiteral(l.Value, l.Lang)
	case l.Datatype != "":
		return rdf.NewTypedLiteral(l.Value, l.Datatype)
	default:
		return rdf.NewLiteral(l.Value)
	}
}
