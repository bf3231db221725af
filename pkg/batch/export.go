package batch

import (
	"context"

	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/oneconcern/ddr/pkg/model"
	"github.com/oneconcern/ddr/pkg/storage"
)

// Export dumps objects as csv rows, one column per field of the schema
func Export(objects []*model.Object, schema *model.Schema) ([]string, [][]string, error) {
	headers := schema.Names()
	rows := make([][]string, 0, len(objects))
	for _, o := range objects {
		row, err := o.Row(headers)
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

// ReadObjects loads the documents of the objects of model m among paths, sorted by identifier
func ReadObjects(ctx context.Context, store storage.Store, r *model.Registry, paths []string, m identifier.Model) ([]*model.Object, error) {
	byID := make(map[string]*model.Object)
	ids := make(identifier.Identifiers, 0, len(paths))
	for _, p := range paths {
		id, err := identifier.FromPath(p)
		if err != nil {
			return nil, err
		}
		if id.Model != m {
			continue
		}
		o, err := r.Read(ctx, store, p)
		if err != nil {
			return nil, err
		}
		byID[o.ID()] = o
		ids = append(ids, o.Identifier)
	}
	identifier.Sort(ids)
	res := make([]*model.Object, 0, len(ids))
	for _, id := range ids {
		res = append(res, byID[id.ID])
	}
	return res, nil
}
