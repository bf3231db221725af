package identifier

// IDFromPath returns the canonical id of the object addressed by an absolute path
func IDFromPath(p string) (string, error) {
	i, err := FromPath(p)
	if err != nil {
		return "", err
	}
	return i.ID, nil
}

// ModelOf tells the model of an id, path or url, without keeping the identifier
func ModelOf(v interface{}) (Model, error) {
	i, err := New(v)
	if err != nil {
		return "", err
	}
	return i.Model, nil
}
