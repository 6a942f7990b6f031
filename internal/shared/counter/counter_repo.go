package counter

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, name string, seed int64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue issues the next value of the named counter. The first call
// returns seed; every later call returns the previous value plus one. The
// whole increment-and-fetch is a single statement, so two concurrent callers
// can never observe the same value.
func (r *repository) GetNextValue(ctx context.Context, name string, seed int64) (int64, error) {
	var nextValue int64

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (name, last_value, updated_at)
		VALUES (?, ?, now())
		ON CONFLICT (name) DO UPDATE
		SET last_value = counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, name, seed).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
