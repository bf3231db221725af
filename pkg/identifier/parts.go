package identifier

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Component is a named token of an id
type Component string

// Known components
const (
	Repo Component = "repo"
	Org  Component = "org"
	CID  Component = "cid"
	EID  Component = "eid"
	Role Component = "role"
	SHA1 Component = "sha1"
	Ext  Component = "ext"
)

// id components, in order. Each model uses a prefix of this list.
var idComponents = []Component{Repo, Org, CID, EID, Role, SHA1}

// IsNumeric tells if the component holds an integer.
//
// This is decided by name: a sha1 made only of digits remains a string.
func (c Component) IsNumeric() bool {
	return c == CID || c == EID
}

func (c Component) known() bool {
	switch c {
	case Repo, Org, CID, EID, Role, SHA1, Ext:
		return true
	default:
		return false
	}
}

// Parts holds the component values of an identifier.
//
// Only the components of the identifier's model are meaningful.
type Parts struct {
	Repo string
	Org  string
	CID  int
	EID  int
	Role string
	SHA1 string
}

// Pair is a single component value
type Pair struct {
	Key   Component
	Value interface{}
}

// Value of a component: int for numeric components, string otherwise
func (p Parts) Value(c Component) interface{} {
	switch c {
	case Repo:
		return p.Repo
	case Org:
		return p.Org
	case CID:
		return p.CID
	case EID:
		return p.EID
	case Role:
		return p.Role
	case SHA1:
		return p.SHA1
	default:
		return nil
	}
}

// Pairs returns the ordered component values for a model
func (p Parts) Pairs(m Model) []Pair {
	components := m.Components()
	pairs := make([]Pair, 0, len(components))
	for _, c := range components {
		pairs = append(pairs, Pair{Key: c, Value: p.Value(c)})
	}
	return pairs
}

// Map returns the component values for a model as a map
func (p Parts) Map(m Model) map[string]interface{} {
	res := make(map[string]interface{}, len(idComponents))
	for _, pair := range p.Pairs(m) {
		res[string(pair.Key)] = pair.Value
	}
	return res
}

// trim keeps only the components used by a model
func (p Parts) trim(m Model) Parts {
	var res Parts
	for _, c := range m.Components() {
		res.set(c, p)
	}
	return res
}

func (p *Parts) set(c Component, from Parts) {
	switch c {
	case Repo:
		p.Repo = from.Repo
	case Org:
		p.Org = from.Org
	case CID:
		p.CID = from.CID
	case EID:
		p.EID = from.EID
	case Role:
		p.Role = from.Role
	case SHA1:
		p.SHA1 = from.SHA1
	}
}

// strings renders the component values for template formatting
func (p Parts) strings(m Model) map[string]string {
	res := make(map[string]string, len(idComponents))
	for _, pair := range p.Pairs(m) {
		res[string(pair.Key)] = fmt.Sprint(pair.Value)
	}
	return res
}

// partsFor builds the parts of a model from loosely typed values.
//
// Unknown keys are ignored. Every component of the model must be present.
func partsFor(m Model, values map[string]interface{}) (Parts, error) {
	var p Parts
	for _, c := range m.Components() {
		v, ok := values[string(c)]
		if !ok || v == nil {
			return Parts{}, ErrMalformedParts.Wrapf("%s: missing component %q", m, c)
		}
		if c.IsNumeric() {
			n, err := toNumber(v)
			if err != nil {
				return Parts{}, ErrMalformedParts.Wrapf("%s: component %q: %v", m, c, err)
			}
			p.setNumber(c, n)
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil || s == "" {
			return Parts{}, ErrMalformedParts.Wrapf("%s: component %q must be a non-empty string", m, c)
		}
		p.setString(c, s)
	}
	return p, nil
}

func (p *Parts) setNumber(c Component, n int) {
	switch c {
	case CID:
		p.CID = n
	case EID:
		p.EID = n
	}
}

func (p *Parts) setString(c Component, s string) {
	switch c {
	case Repo:
		p.Repo = s
	case Org:
		p.Org = s
	case Role:
		p.Role = s
	case SHA1:
		p.SHA1 = s
	}
}

// toNumber converts a numeric component.
//
// Strings must be made of decimal digits only: leading zeros never switch to octal.
func toNumber(v interface{}) (int, error) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" || strings.TrimLeft(s, "0123456789") != "" {
			return 0, fmt.Errorf("%q is not a decimal number", s)
		}
		return strconv.Atoi(s)
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%d is negative", n)
	}
	return n, nil
}
