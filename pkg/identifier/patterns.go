package identifier

import (
	"regexp"
)

// pattern recognizes one form of an identifier for a model.
//
// Named groups outside the component vocabulary (e.g. cid0, the collection id
// repeated in the directory part of a path) only anchor the match and are dropped.
type pattern struct {
	re    *regexp.Regexp
	label string
	model Model
}

const (
	word   = `[0-9A-Za-z_]+`
	number = `[0-9]+`
	hash   = `[0-9A-Za-z_]+`
)

func group(name, expr string) string {
	return `(?P<` + name + `>` + expr + `)`
}

// dashed builds the dash-joined id expression of a model, with group names suffixed
func dashed(m Model, suffix string) string {
	var res string
	for i, c := range m.Components() {
		if i > 0 {
			res += `-`
		}
		expr := word
		switch {
		case c.IsNumeric():
			expr = number
		case c == SHA1:
			expr = hash
		}
		res += group(string(c)+suffix, expr)
	}
	return res
}

var (
	collectionDir = `^` + group("basepath", `.*`) + `/` + dashed(Collection, "0")
	entityDir     = collectionDir + `/files/` + dashed(Entity, "1")
)

// idPatterns are tried in order: longest ids first.
var idPatterns = []pattern{
	{re: regexp.MustCompile(`^` + dashed(File, "") + `$`), label: "file", model: File},
	{re: regexp.MustCompile(`^` + dashed(FileRole, "") + `$`), label: "file-role", model: FileRole},
	{re: regexp.MustCompile(`^` + dashed(Entity, "") + `$`), label: "entity", model: Entity},
	{re: regexp.MustCompile(`^` + dashed(Collection, "") + `$`), label: "collection", model: Collection},
	{re: regexp.MustCompile(`^` + dashed(Organization, "") + `$`), label: "organization", model: Organization},
	{re: regexp.MustCompile(`^` + dashed(Repository, "") + `$`), label: "repository", model: Repository},
}

const patternFileAccess = "file-access-abs"

// pathPatterns match absolute, cleaned paths. Objects and their additional files resolve to the object.
var pathPatterns = []pattern{
	{
		re:    regexp.MustCompile(entityDir + `/files/` + dashed(File, "") + `-a\.` + group("ext", word) + `$`),
		label: patternFileAccess, model: File,
	},
	{
		re:    regexp.MustCompile(entityDir + `/files/` + dashed(File, "") + `\.` + group("ext", word) + `$`),
		label: "file-ext-abs", model: File,
	},
	{
		re:    regexp.MustCompile(entityDir + `/files/` + dashed(File, "") + `$`),
		label: "file-abs", model: File,
	},
	{
		re: regexp.MustCompile(collectionDir + `/files/` + dashed(Entity, "") +
			`(?:/` + group("file", `entity\.json|changelog|control|mets\.xml|files`) + `)?$`),
		label: "entity-abs", model: Entity,
	},
	{
		re: regexp.MustCompile(`^` + group("basepath", `.*`) + `/` + dashed(Collection, "") +
			`(?:/` + group("file", `collection\.json|changelog|control|ead\.xml|files|lock|\.gitignore|\.git|\.git/annex`) + `)?$`),
		label: "collection-abs", model: Collection,
	},
	{
		re: regexp.MustCompile(`^` + group("basepath", `.*`) + `/` + dashed(Organization, "") +
			`(?:/` + group("file", `organization\.json`) + `)?$`),
		label: "organization-abs", model: Organization,
	},
	{
		re: regexp.MustCompile(`^` + group("basepath", `.*`) + `/` + dashed(Repository, "") +
			`(?:/` + group("file", `repository\.json`) + `)?$`),
		label: "repository-abs", model: Repository,
	},
}

func slashed(m Model) string {
	var res string
	for _, c := range m.Components() {
		expr := word
		if c.IsNumeric() {
			expr = number
		}
		res += `/` + group(string(c), expr)
	}
	return res
}

// urlPatterns match the path of a url: editor urls first, then public urls.
var urlPatterns = []pattern{
	{re: regexp.MustCompile(`^/ui/` + dashed(File, "") + `/?$`), label: "editor-file", model: File},
	{re: regexp.MustCompile(`^/ui/` + dashed(FileRole, "") + `/?$`), label: "editor-file-role", model: FileRole},
	{re: regexp.MustCompile(`^/ui/` + dashed(Entity, "") + `/?$`), label: "editor-entity", model: Entity},
	{re: regexp.MustCompile(`^/ui/` + dashed(Collection, "") + `/?$`), label: "editor-collection", model: Collection},
	{re: regexp.MustCompile(`^/ui/` + dashed(Organization, "") + `/?$`), label: "editor-organization", model: Organization},
	{re: regexp.MustCompile(`^/ui/` + dashed(Repository, "") + `/?$`), label: "editor-repository", model: Repository},
	{re: regexp.MustCompile(`^` + slashed(File) + `/?$`), label: "public-file", model: File},
	{re: regexp.MustCompile(`^` + slashed(FileRole) + `/?$`), label: "public-file-role", model: FileRole},
	{re: regexp.MustCompile(`^` + slashed(Entity) + `/?$`), label: "public-entity", model: Entity},
	{re: regexp.MustCompile(`^` + slashed(Collection) + `/?$`), label: "public-collection", model: Collection},
	{re: regexp.MustCompile(`^` + slashed(Organization) + `/?$`), label: "public-organization", model: Organization},
	{re: regexp.MustCompile(`^` + slashed(Repository) + `/?$`), label: "public-repository", model: Repository},
}

// match is the outcome of matching a pattern table
type match struct {
	label    string
	model    Model
	values   map[string]interface{}
	basepath string
	ext      string
}

// matchFirst tries patterns in order and returns the first match.
func matchFirst(patterns []pattern, s string) (match, bool) {
	for _, p := range patterns {
		sub := p.re.FindStringSubmatch(s)
		if sub == nil {
			continue
		}
		m := match{
			label:  p.label,
			model:  p.model,
			values: make(map[string]interface{}, len(idComponents)),
		}
		for i, name := range p.re.SubexpNames() {
			switch {
			case name == "basepath":
				m.basepath = sub[i]
			case name == string(Ext):
				m.ext = sub[i]
			case Component(name).known():
				m.values[name] = sub[i]
			}
		}
		return m, true
	}
	return match{}, false
}
