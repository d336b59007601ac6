package dataset

import "context"

// Loader turns a file on disk into an in-memory Dataset. The core
// never reads raw bytes itself; implementations live with whichever
// binding does (netCDF reader, test fixtures).
type Loader interface {
	LoadDataset(ctx context.Context, path string) (*Dataset, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, path string) (*Dataset, error)

func (f LoaderFunc) LoadDataset(ctx context.Context, path string) (*Dataset, error) {
	return f(ctx, path)
}
