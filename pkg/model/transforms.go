package model

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Transform function signatures
type (
	// LoadFunc converts the text of a csv cell into a field value
	LoadFunc func(string) (interface{}, error)

	// DumpFunc converts a field value into the text of a csv cell
	DumpFunc func(interface{}) (string, error)

	// ValidateFunc checks a loaded value against the valid values of a controlled vocabulary
	ValidateFunc func(interface{}, []string) bool

	// DisplayFunc renders a field value for humans
	DisplayFunc func(interface{}) string
)

// Transforms holds the named functions a schema may refer to.
type Transforms struct {
	Load     map[string]LoadFunc
	Dump     map[string]DumpFunc
	Validate map[string]ValidateFunc
	Display  map[string]DisplayFunc
}

// Transform names
const (
	TransformText     = "text"
	TransformList     = "list"
	TransformInt      = "int"
	TransformBool     = "bool"
	TransformDatetime = "datetime"
	TransformKVList   = "kvlist"
	TransformChoice   = "choice"
	TransformChoices  = "choices"
)

const (
	// DatetimeFormat is the layout of timestamps in metadata documents
	DatetimeFormat = "2006-01-02T15:04:05"

	displayDatetimeFormat = "Jan 2, 2006 15:04"
	listSeparator         = ";"
	kvSeparator           = "|"
	kvAssign              = ":"
)

var datetimeLayouts = []string{
	DatetimeFormat,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999",
	"2006-01-02",
}

// DefaultTransforms knows about text, list, int, bool, datetime and kvlist values,
// and validates choice and choices against a vocabulary.
func DefaultTransforms() Transforms {
	return Transforms{
		Load: map[string]LoadFunc{
			TransformText:     loadText,
			TransformList:     loadList,
			TransformInt:      loadInt,
			TransformBool:     loadBool,
			TransformDatetime: loadDatetime,
			TransformKVList:   loadKVList,
		},
		Dump: map[string]DumpFunc{
			TransformText:     dumpText,
			TransformList:     dumpList,
			TransformInt:      dumpText,
			TransformBool:     dumpBool,
			TransformDatetime: dumpText,
			TransformKVList:   dumpKVList,
		},
		Validate: map[string]ValidateFunc{
			TransformChoice:  validateChoice,
			TransformChoices: validateChoices,
			TransformInt:     validateInt,
		},
		Display: map[string]DisplayFunc{
			TransformText:     displayText,
			TransformList:     displayList,
			TransformBool:     displayBool,
			TransformDatetime: displayDatetime,
			TransformKVList:   displayKVList,
		},
	}
}

func loadText(s string) (interface{}, error) {
	return strings.TrimSpace(s), nil
}

func loadList(s string) (interface{}, error) {
	res := []interface{}{}
	for _, item := range strings.Split(s, listSeparator) {
		if item = strings.TrimSpace(item); item != "" {
			res = append(res, item)
		}
	}
	return res, nil
}

func loadInt(s string) (interface{}, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	n, err := cast.ToIntE(s)
	if err != nil {
		return nil, ErrTransform.Wrapf("%q is not an integer", s)
	}
	return n, nil
}

func loadBool(s string) (interface{}, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return false, nil
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}
	b, err := cast.ToBoolE(strings.TrimSpace(s))
	if err != nil {
		return nil, ErrTransform.Wrapf("%q is not a boolean", s)
	}
	return b, nil
}

func loadDatetime(s string) (interface{}, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DatetimeFormat), nil
		}
	}
	return nil, ErrTransform.Wrapf("%q is not a date", s)
}

// loadKVList reads "key:value|key:value; key:value" into a list of objects
func loadKVList(s string) (interface{}, error) {
	res := []interface{}{}
	for _, item := range strings.Split(s, listSeparator) {
		if strings.TrimSpace(item) == "" {
			continue
		}
		entry := make(map[string]interface{})
		for _, pair := range strings.Split(item, kvSeparator) {
			kv := strings.SplitN(pair, kvAssign, 2)
			if len(kv) != 2 || strings.TrimSpace(kv[0]) == "" {
				return nil, ErrTransform.Wrapf("%q is not a key:value pair", strings.TrimSpace(pair))
			}
			entry[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
		res = append(res, entry)
	}
	return res, nil
}

func dumpText(v interface{}) (string, error) {
	v = plain(v)
	if v == nil {
		return "", nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", ErrTransform.Wrapf("cannot dump %T as text", v)
	}
	return s, nil
}

func dumpList(v interface{}) (string, error) {
	v = plain(v)
	items, err := cast.ToStringSliceE(v)
	if err != nil {
		return "", ErrTransform.Wrapf("cannot dump %T as a list", v)
	}
	return strings.Join(items, listSeparator+" "), nil
}

func dumpBool(v interface{}) (string, error) {
	v = plain(v)
	b, err := cast.ToBoolE(v)
	if err != nil {
		return "", ErrTransform.Wrapf("cannot dump %T as a boolean", v)
	}
	if b {
		return "1", nil
	}
	return "0", nil
}

func dumpKVList(v interface{}) (string, error) {
	items, err := cast.ToSliceE(v)
	if err != nil {
		return "", ErrTransform.Wrapf("cannot dump %T as a list of key:value pairs", v)
	}
	entries := make([]string, 0, len(items))
	for _, item := range items {
		m, err := cast.ToStringMapStringE(plainMap(item))
		if err != nil {
			return "", ErrTransform.Wrapf("cannot dump %T as key:value pairs", item)
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, k+kvAssign+m[k])
		}
		entries = append(entries, strings.Join(pairs, kvSeparator))
	}
	return strings.Join(entries, listSeparator+" "), nil
}

func validateChoice(v interface{}, valid []string) bool {
	v = plain(v)
	s := strings.TrimSpace(cast.ToString(v))
	if s == "" || len(valid) == 0 {
		return true
	}
	return contains(valid, s)
}

func validateChoices(v interface{}, valid []string) bool {
	items, err := cast.ToStringSliceE(v)
	if err != nil {
		return false
	}
	for _, item := range items {
		if !validateChoice(item, valid) {
			return false
		}
	}
	return true
}

func validateInt(v interface{}, _ []string) bool {
	v = plain(v)
	if s, ok := v.(string); ok && s == "" {
		return true
	}
	_, err := cast.ToIntE(v)
	return err == nil
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func displayText(v interface{}) string {
	v = plain(v)
	return cast.ToString(v)
}

func displayList(v interface{}) string {
	return strings.Join(cast.ToStringSlice(v), ", ")
}

func displayBool(v interface{}) string {
	v = plain(v)
	if cast.ToBool(v) {
		return "yes"
	}
	return "no"
}

func displayDatetime(v interface{}) string {
	s := cast.ToString(v)
	t, err := time.Parse(DatetimeFormat, s)
	if err != nil {
		return s
	}
	return t.Format(displayDatetimeFormat)
}

func displayKVList(v interface{}) string {
	s, err := dumpKVList(v)
	if err != nil {
		return cast.ToString(v)
	}
	return s
}

// plain unwraps numbers decoded from metadata documents
func plain(v interface{}) interface{} {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

func plainMap(v interface{}) interface{} {
	m, ok := v.(map[string]interface{})
	if !ok {
		return v
	}
	res := make(map[string]interface{}, len(m))
	for k, val := range m {
		res[k] = plain(val)
	}
	return res
}
