package storage

import (
	"context"
	"io"

	"go.uber.org/zap"
)

// Instrument decorates a store with debug logging of every call
func Instrument(logger *zap.Logger, store Store) Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &instrumentedStore{
		store: store,
		logs:  logger.With(zap.String("store", store.String())),
	}
}

type instrumentedStore struct {
	store Store
	logs  *zap.Logger
}

func (i *instrumentedStore) Has(ctx context.Context, key string) (bool, error) {
	has, err := i.store.Has(ctx, key)
	i.logs.Debug("storage has", zap.String("key", key), zap.Bool("has", has), zap.Error(err))
	return has, err
}

func (i *instrumentedStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	rdr, err := i.store.Get(ctx, key)
	i.logs.Debug("storage get", zap.String("key", key), zap.Error(err))
	return rdr, err
}

func (i *instrumentedStore) Put(ctx context.Context, key string, rdr io.Reader, exclusive bool) error {
	err := i.store.Put(ctx, key, rdr, exclusive)
	i.logs.Debug("storage put", zap.String("key", key), zap.Bool("exclusive", exclusive), zap.Error(err))
	return err
}

func (i *instrumentedStore) Delete(ctx context.Context, key string) error {
	err := i.store.Delete(ctx, key)
	i.logs.Debug("storage delete", zap.String("key", key), zap.Error(err))
	return err
}

func (i *instrumentedStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := i.store.Keys(ctx, prefix)
	i.logs.Debug("storage keys", zap.String("prefix", prefix), zap.Int("count", len(keys)), zap.Error(err))
	return keys, err
}

func (i *instrumentedStore) String() string {
	return i.store.String()
}
