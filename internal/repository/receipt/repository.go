package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/you-humble/computer-shop/internal/model"
	"github.com/you-humble/computer-shop/internal/repository/csvfile"
)

type repository struct {
	dir string
}

func NewReceiptRepository(dir string) *repository {
	return &repository{dir: dir}
}

// Save writes the receipt records to the receipt's file under the receipts
// directory, replacing an older receipt of the same user, and returns the path.
func (r *repository) Save(ctx context.Context, receipt *model.Receipt) (string, error) {
	const op = "repository.receipt.Save"

	if receipt == nil {
		return "", fmt.Errorf("%s: %w", op, errors.Join(model.ErrValidation, errors.New("nil receipt")))
	}

	name := receipt.FileName
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || strings.HasPrefix(name, "..") {
		return "", fmt.Errorf("%s: %w", op, errors.Join(model.ErrValidation, fmt.Errorf("bad receipt file name %q", receipt.FileName)))
	}

	path := filepath.Join(r.dir, name)
	if err := csvfile.Write(ctx, path, receipt.Records); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return path, nil
}
