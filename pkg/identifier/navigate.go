package identifier

import "sort"

// Parent returns the identifier one level up.
//
// With stubs, a file's parent is its file-role and the chain continues above
// collections. Without stubs, a file's parent is its entity and a collection has no parent.
func (i Identifier) Parent(stubs bool) (Identifier, bool) {
	pm := i.Model.Parent(stubs)
	if pm == "" {
		return Identifier{}, false
	}
	parts := i.Parts.trim(pm)
	id, err := formatID(pm, parts)
	if err != nil {
		return Identifier{}, false
	}
	return Identifier{
		Raw:      i.ID,
		Method:   MethodParts,
		Model:    pm,
		Parts:    parts,
		ID:       id,
		BasePath: i.BasePath,
	}, true
}

// ParentID returns the id of the parent, or "" at the top of the walk
func (i Identifier) ParentID(stubs bool) string {
	parent, ok := i.Parent(stubs)
	if !ok {
		return ""
	}
	return parent.ID
}

// ParentPath returns the absolute path of the parent, or "" at the top of the walk
func (i Identifier) ParentPath(stubs bool) (string, error) {
	parent, ok := i.Parent(stubs)
	if !ok {
		return "", nil
	}
	return parent.PathAbs()
}

// Child returns a new identifier one level down, built from the current parts overlaid with extra.
//
// The model must be a legal child: an entity under a collection, a file or file-role under an entity.
// Entities accept files directly as well as file-roles, unlike the strict
// repository > organization > collection > entity > file-role > file chain followed by Parent
// with stubs: files are created under their entity once their hash is known.
func (i Identifier) Child(m Model, extra map[string]interface{}) (Identifier, error) {
	if !m.Valid() {
		return Identifier{}, ErrUnknownModel.Wrapf("%q", m)
	}
	if !i.Model.IsChild(m) {
		return Identifier{}, ErrIllegalNavigation.Wrapf("%s is not a child of %s", m, i.Model)
	}
	values := i.Parts.Map(i.Model)
	for k, v := range extra {
		values[k] = v
	}
	return FromParts(m, values, BasePath(i.BasePath))
}

// Lineage lists the identifier and its ancestors, nearest first
func (i Identifier) Lineage(stubs bool) []Identifier {
	lineage := []Identifier{i}
	for current, ok := i.Parent(stubs); ok; current, ok = current.Parent(stubs) {
		lineage = append(lineage, current)
	}
	return lineage
}

// Collection returns the identifier of the collection this object belongs to.
//
// Organizations and repositories sit above any collection: this fails with ErrIllegalNavigation.
func (i Identifier) Collection() (Identifier, error) {
	if !i.Model.InCollection() {
		return Identifier{}, ErrIllegalNavigation.Wrapf("%s %s has no collection", i.Model, i.ID)
	}
	if i.Model == Collection {
		return i, nil
	}
	parts := i.Parts.trim(Collection)
	id, err := formatID(Collection, parts)
	if err != nil {
		return Identifier{}, err
	}
	return Identifier{
		Raw:      i.ID,
		Method:   MethodParts,
		Model:    Collection,
		Parts:    parts,
		ID:       id,
		BasePath: i.BasePath,
	}, nil
}

// CollectionID returns the id of the collection this object belongs to
func (i Identifier) CollectionID() (string, error) {
	c, err := i.Collection()
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

// CollectionPath returns the absolute path of the collection this object belongs to
func (i Identifier) CollectionPath() (string, error) {
	c, err := i.Collection()
	if err != nil {
		return "", err
	}
	return c.PathAbs()
}

// Identifiers is a sortable slice of Identifier.
//
// Identifiers sort by component, numerically for numeric components, so that
// ddr-test-123-2 comes before ddr-test-123-10. Ancestors sort before their descendants.
type Identifiers []Identifier

func (s Identifiers) Len() int {
	return len(s)
}
func (s Identifiers) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
func (s Identifiers) Less(i, j int) bool {
	a, b := s[i], s[j]
	ac, bc := a.Model.Components(), b.Model.Components()
	for k := 0; k < len(ac) && k < len(bc); k++ {
		c := ac[k]
		if c.IsNumeric() {
			av, bv := a.Parts.Value(c).(int), b.Parts.Value(c).(int)
			if av != bv {
				return av < bv
			}
			continue
		}
		av, bv := a.Parts.Value(c).(string), b.Parts.Value(c).(string)
		if av != bv {
			return av < bv
		}
	}
	return len(ac) < len(bc)
}

// IDs returns the ids of the identifiers
func (s Identifiers) IDs() []string {
	ids := make([]string, len(s))
	for i, id := range s {
		ids[i] = id.ID
	}
	return ids
}

// Sort identifiers in place
func Sort(ids []Identifier) {
	sort.Stable(Identifiers(ids))
}
