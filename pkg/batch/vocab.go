package batch

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/oneconcern/ddr/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"

	jsoniter "github.com/json-iterator/go"
)

// ErrVocab indicates a controlled vocabulary file which cannot be read
var ErrVocab = errors.New("invalid vocabulary")

// Term of a controlled vocabulary
type Term struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Vocabulary is a named list of terms
type Vocabulary struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Terms       []Term `json:"terms" yaml:"terms"`
}

// Vocab maps vocabulary names to their valid term ids
type Vocab map[string][]string

// Values valid for a vocabulary. Unknown vocabularies have none.
func (v Vocab) Values(name string) []string {
	if v == nil || name == "" {
		return nil
	}
	return v[name]
}

// Add the terms of a vocabulary
func (v Vocab) Add(voc Vocabulary) {
	ids := make([]string, 0, len(voc.Terms))
	for _, t := range voc.Terms {
		ids = append(ids, t.ID)
	}
	v[voc.ID] = ids
}

// ParseVocabulary reads a vocabulary from json or yaml, decided by the file extension
func ParseVocabulary(name string, data []byte) (Vocabulary, error) {
	var (
		voc Vocabulary
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		err = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &voc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &voc)
	default:
		return Vocabulary{}, ErrVocab.Wrapf("%s: unsupported format", name)
	}
	if err != nil {
		return Vocabulary{}, ErrVocab.Wrapf("%s: %v", name, err)
	}
	if voc.ID == "" {
		voc.ID = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return voc, nil
}

// LoadVocab reads every json or yaml vocabulary file in dir
func LoadVocab(fs afero.Fs, dir string) (Vocab, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, ErrVocab.Wrap(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	vocab := make(Vocab, len(names))
	for _, name := range names {
		data, err := afero.ReadFile(fs, filepath.Join(dir, name))
		if err != nil {
			return nil, ErrVocab.Wrap(err)
		}
		voc, err := ParseVocabulary(name, data)
		if err != nil {
			return nil, err
		}
		vocab.Add(voc)
	}
	return vocab, nil
}
