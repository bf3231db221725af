package identifier

// Model is the kind of an archive object
type Model string

// Models, from the top of the hierarchy down
const (
	Repository   Model = "repository"
	Organization Model = "organization"
	Collection   Model = "collection"
	Entity       Model = "entity"
	FileRole     Model = "file-role"
	File         Model = "file"
)

var models = []Model{Repository, Organization, Collection, Entity, FileRole, File}

// parents when stubs are skipped: only the levels living inside a collection checkout
var parents = map[Model]Model{
	File:     Entity,
	FileRole: Entity,
	Entity:   Collection,
}

// parents along the full chain
var parentsAll = map[Model]Model{
	File:         FileRole,
	FileRole:     Entity,
	Entity:       Collection,
	Collection:   Organization,
	Organization: Repository,
}

// Models lists all models, from the top of the hierarchy down
func Models() []Model {
	return append([]Model(nil), models...)
}

// ParseModel checks a model name
func ParseModel(name string) (Model, error) {
	m := Model(name)
	if !m.Valid() {
		return "", ErrUnknownModel.Wrapf("%q", name)
	}
	return m, nil
}

// Valid model?
func (m Model) Valid() bool {
	switch m {
	case Repository, Organization, Collection, Entity, FileRole, File:
		return true
	default:
		return false
	}
}

func (m Model) String() string {
	return string(m)
}

// IsStub tells if the model stands in for a file without content hash
func (m Model) IsStub() bool {
	return m == FileRole
}

// InCollection tells if objects of this model live inside a collection checkout
func (m Model) InCollection() bool {
	switch m {
	case Collection, Entity, FileRole, File:
		return true
	default:
		return false
	}
}

// Depth of the model in the hierarchy, starting at 0 for repository
func (m Model) Depth() int {
	for i, candidate := range models {
		if candidate == m {
			return i
		}
	}
	return -1
}

// Parent model, or "" at the top of the walk
func (m Model) Parent(stubs bool) Model {
	if stubs {
		return parentsAll[m]
	}
	return parents[m]
}

// Children lists the models which may be created directly under this one.
//
// A model is a legal child when this model is its parent, with or without stubs:
// an entity holds both file-roles and files.
func (m Model) Children() []Model {
	var children []Model
	for _, candidate := range models {
		if candidate.Parent(true) == m || candidate.Parent(false) == m {
			children = append(children, candidate)
		}
	}
	return children
}

// IsChild tells if child is a legal child model of m
func (m Model) IsChild(child Model) bool {
	for _, c := range m.Children() {
		if c == child {
			return true
		}
	}
	return false
}

// Components used by this model, in id order
func (m Model) Components() []Component {
	d := m.Depth()
	if d < 0 {
		return nil
	}
	return append([]Component(nil), idComponents[:d+1]...)
}
