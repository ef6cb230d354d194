package repository

import (
	"context"
	"fmt"

	"github.com/you-humble/computer-shop/internal/repository/csvfile"
)

// repository keeps the catalog as one record per part in a single file.
type repository struct {
	path string
}

func NewPartRepository(path string) *repository {
	return &repository{path: path}
}

func (r *repository) Path() string { return r.path }

func (r *repository) Exists() (bool, error) {
	const op = "repository.part.Exists"

	ok, err := csvfile.Exists(r.path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

func (r *repository) Load(ctx context.Context) ([][]string, error) {
	const op = "repository.part.Load"

	records, err := csvfile.Read(ctx, r.path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return records, nil
}

func (r *repository) Save(ctx context.Context, records [][]string) error {
	const op = "repository.part.Save"

	if err := csvfile.Write(ctx, r.path, records); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
