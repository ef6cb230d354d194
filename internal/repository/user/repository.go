package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/you-humble/computer-shop/internal/model"
	"github.com/you-humble/computer-shop/internal/repository/csvfile"
	"github.com/you-humble/computer-shop/platform/logger"
)

const userFields = 3

// repository stores one username,email,hash row per user.
type repository struct {
	mu   sync.Mutex
	path string
}

func NewUserRepository(path string) *repository {
	return &repository{path: path}
}

func (r *repository) List(ctx context.Context) ([]model.User, error) {
	const op = "repository.user.List"

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := csvfile.Read(ctx, r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	users := make([]model.User, 0, len(records))
	for i, rec := range records {
		if len(rec) != userFields {
			logger.Warn(ctx, "skipping malformed user row",
				logger.String("path", r.path),
				logger.Int("row", i+1),
				logger.Int("fields", len(rec)),
			)
			continue
		}
		users = append(users, model.User{
			Username:     rec[0],
			Email:        rec[1],
			PasswordHash: rec[2],
		})
	}
	return users, nil
}

func (r *repository) Append(ctx context.Context, u model.User) error {
	const op = "repository.user.Append"

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := csvfile.Append(ctx, r.path, []string{u.Username, u.Email, u.PasswordHash}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
