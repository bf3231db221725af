package identifier

import (
	"fmt"
	"regexp"
	"sort"
)

// Variant of a path template
type Variant string

// Path variants
const (
	Abs Variant = "abs"
	Rel Variant = "rel"
)

// Context of a url template
type Context string

// URL contexts
const (
	Editor Context = "editor"
	Public Context = "public"
)

// Additional files which can be appended to an object path
const (
	AddJSON      = "json"
	AddChangelog = "changelog"
	AddControl   = "control"
	AddAccess    = "access"
	AddMets      = "mets"
	AddEAD       = "ead"
	AddFiles     = "files"
	AddLock      = "lock"
	AddGitignore = "gitignore"
	AddAnnex     = "annex"
	AddGit       = "git"
)

var additionalNames = map[string]struct{}{
	AddJSON: {}, AddChangelog: {}, AddControl: {}, AddAccess: {}, AddMets: {}, AddEAD: {},
	AddFiles: {}, AddLock: {}, AddGitignore: {}, AddAnnex: {}, AddGit: {},
}

var idTemplates = map[Model]string{
	File:         "{repo}-{org}-{cid}-{eid}-{role}-{sha1}",
	FileRole:     "{repo}-{org}-{cid}-{eid}-{role}",
	Entity:       "{repo}-{org}-{cid}-{eid}",
	Collection:   "{repo}-{org}-{cid}",
	Organization: "{repo}-{org}",
	Repository:   "{repo}",
}

type pathKey struct {
	model   Model
	variant Variant
}

// pathTemplates spell out the whole directory chain: each level nests under files/ of its parent.
// A file-role has no location of its own. Relative paths start at the collection root.
var pathTemplates = map[pathKey]string{
	{File, Abs}:         "{basepath}/{repo}-{org}-{cid}/files/{repo}-{org}-{cid}-{eid}/files/{repo}-{org}-{cid}-{eid}-{role}-{sha1}",
	{Entity, Abs}:       "{basepath}/{repo}-{org}-{cid}/files/{repo}-{org}-{cid}-{eid}",
	{Collection, Abs}:   "{basepath}/{repo}-{org}-{cid}",
	{Organization, Abs}: "{basepath}/{repo}-{org}",
	{Repository, Abs}:   "{basepath}/{repo}",
	{File, Rel}:         "files/{repo}-{org}-{cid}-{eid}/files/{repo}-{org}-{cid}-{eid}-{role}-{sha1}",
	{Entity, Rel}:       "files/{repo}-{org}-{cid}-{eid}",
	{Collection, Rel}:   ".",
}

type urlKey struct {
	model   Model
	context Context
}

var urlTemplates = map[urlKey]string{
	{File, Editor}:         "/ui/{repo}-{org}-{cid}-{eid}-{role}-{sha1}/",
	{FileRole, Editor}:     "/ui/{repo}-{org}-{cid}-{eid}-{role}/",
	{Entity, Editor}:       "/ui/{repo}-{org}-{cid}-{eid}/",
	{Collection, Editor}:   "/ui/{repo}-{org}-{cid}/",
	{Organization, Editor}: "/ui/{repo}-{org}/",
	{Repository, Editor}:   "/ui/{repo}/",
	{File, Public}:         "/{repo}/{org}/{cid}/{eid}/{role}/{sha1}/",
	{FileRole, Public}:     "/{repo}/{org}/{cid}/{eid}/{role}/",
	{Entity, Public}:       "/{repo}/{org}/{cid}/{eid}/",
	{Collection, Public}:   "/{repo}/{org}/{cid}/",
	{Organization, Public}: "/{repo}/{org}/",
	{Repository, Public}:   "/{repo}/",
}

// additionalPaths are relative to the object directory, except for files
// where they are file names templated on the file id.
var additionalPaths = map[Model]map[string]string{
	Repository: {
		AddJSON: "repository.json",
	},
	Organization: {
		AddJSON: "organization.json",
	},
	Collection: {
		AddJSON:      "collection.json",
		AddChangelog: "changelog",
		AddControl:   "control",
		AddEAD:       "ead.xml",
		AddFiles:     "files",
		AddLock:      "lock",
		AddGitignore: ".gitignore",
		AddAnnex:     ".git/annex",
		AddGit:       ".git",
	},
	Entity: {
		AddJSON:      "entity.json",
		AddChangelog: "changelog",
		AddControl:   "control",
		AddMets:      "mets.xml",
		AddFiles:     "files",
	},
	File: {
		AddJSON:   "{id}.json",
		AddAccess: "{id}-a.jpg",
	},
}

// fileNamed models have additional files named after their id, next to them
func fileNamed(m Model) bool {
	return m == File
}

// AdditionalPaths lists the names of the additional paths known for a model
func AdditionalPaths(m Model) []string {
	names := make([]string, 0, len(additionalPaths[m]))
	for name := range additionalPaths[m] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

// format substitutes {name} placeholders. Every placeholder must have a value.
func format(tpl string, values map[string]string) (string, error) {
	var missing string
	res := placeholderRe.ReplaceAllStringFunc(tpl, func(ph string) string {
		name := ph[1 : len(ph)-1]
		v, ok := values[name]
		if !ok {
			missing = name
			return ph
		}
		return v
	})
	if missing != "" {
		return "", fmt.Errorf("no value for {%s} in template %q", missing, tpl)
	}
	return res, nil
}

func formatID(m Model, p Parts) (string, error) {
	tpl, ok := idTemplates[m]
	if !ok {
		return "", ErrUnknownModel.Wrapf("%q", m)
	}
	id, err := format(tpl, p.strings(m))
	if err != nil {
		return "", ErrMalformedParts.Wrap(err)
	}
	return id, nil
}
