package sdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/juanjosegarciaripoll/tensor/blobstore"
)

// Load reads every record of a container into a Dataset. On error no
// partial dataset is returned.
func Load(path string, opts ...Option) (*Dataset, error) {
	o := newOptions(opts)
	store, name := o.locate(path)
	return loadFile(context.Background(), store, name, path, o)
}

func loadFile(ctx context.Context, store blobstore.Store, name, path string, o *options) (ds *Dataset, err error) {
	f, err := openFile(ctx, store, name, path, o)
	if err != nil {
		o.logger.LogLoad(ctx, path, 0, 0, err)
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			ds, err = nil, fmt.Errorf("closing %s: %w", path, cerr)
		}
		o.logger.LogLoad(ctx, path, ds.lenOrZero(), f.skipped, err)
	}()

	ds = NewDataset(path)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := f.Next()
		if errors.Is(err, io.EOF) {
			return ds, nil
		}
		if err != nil {
			return nil, err
		}
		if ds.Has(rec.Name) && o.duplicates == DuplicateError {
			return nil, &DecodeError{Path: path, Offset: rec.Offset,
				Err: fmt.Errorf("%w: %q", ErrDuplicateField, rec.Name)}
		}
		ds.set(rec.Name, rec.Value)
	}
}

func (d *Dataset) lenOrZero() int {
	if d == nil {
		return 0
	}
	return d.Len()
}

// ReadDirectory loads every container of a directory, in listing order:
// regular files sorted by name, without descending into subdirectories and
// skipping writer lock and temporary files.
func ReadDirectory(dir string, opts ...Option) ([]*Dataset, error) {
	o := newOptions(opts)
	if o.store != nil {
		return readStore(context.Background(), o.store, dir, o)
	}
	return readStore(context.Background(), blobstore.NewLocalStore(dir), "", o)
}

// ReadStore loads every container of store whose name starts with prefix,
// in the store's listing order.
func ReadStore(ctx context.Context, store blobstore.Store, prefix string, opts ...Option) ([]*Dataset, error) {
	return readStore(ctx, store, prefix, newOptions(opts))
}

func readStore(ctx context.Context, store blobstore.Store, prefix string, o *options) ([]*Dataset, error) {
	names, err := store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("listing %q: %w", prefix, err)
	}
	display := func(name string) string {
		if local, ok := store.(*blobstore.LocalStore); ok {
			return filepath.Join(local.Root(), name)
		}
		return path.Clean(name)
	}

	out := make([]*Dataset, len(names))
	if o.concurrency <= 1 {
		for i, name := range names {
			ds, err := loadFile(ctx, store, name, display(name), o)
			if err != nil {
				return nil, err
			}
			out[i] = ds
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, name := range names {
		g.Go(func() error {
			ds, err := loadFile(gctx, store, name, display(name), o)
			if err != nil {
				return err
			}
			out[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadDirectory loads a directory and combines its datasets.
func LoadDirectory(dir string, opts ...Option) (*CombinedDataset, error) {
	datasets, err := ReadDirectory(dir, opts...)
	if err != nil {
		return nil, err
	}
	return Combine(datasets, opts...)
}

// LoadSortedDirectory loads a directory and combines its datasets in
// ascending order of field's leading value.
func LoadSortedDirectory(dir, field string, opts ...Option) (*CombinedDataset, error) {
	datasets, err := ReadDirectory(dir, opts...)
	if err != nil {
		return nil, err
	}
	return CombineSorted(datasets, field, opts...)
}

// LoadStore loads the containers of store under prefix and combines them.
func LoadStore(ctx context.Context, store blobstore.Store, prefix string, opts ...Option) (*CombinedDataset, error) {
	datasets, err := ReadStore(ctx, store, prefix, opts...)
	if err != nil {
		return nil, err
	}
	return Combine(datasets, opts...)
}

// LoadSortedStore is LoadStore with the datasets ordered by field as in
// CombineSorted.
func LoadSortedStore(ctx context.Context, store blobstore.Store, prefix, field string, opts ...Option) (*CombinedDataset, error) {
	datasets, err := ReadStore(ctx, store, prefix, opts...)
	if err != nil {
		return nil, err
	}
	return CombineSorted(datasets, field, opts...)
}
