package employee

import (
	"context"
	"database/sql"
	"strings"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	Search(ctx context.Context, search string, offset, limit int) ([]Employee, error)
	CountSearch(ctx context.Context, search string) (int64, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	sqlDB, _ := db.DB()
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db:    r.db,
		sqlDB: r.sqlDB,
		tx:    tx,
	}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	query := `
INSERT INTO employees (id, name, email, contact_number, date_of_birth, date_of_joining, employee_code, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
`
	_, err := r.execer().ExecContext(ctx, query,
		empl.ID, empl.Name, empl.Email, empl.ContactNumber,
		empl.DateOfBirth, empl.DateOfJoining, empl.EmployeeCode,
	)
	return err
}

func searchScope(search string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		pattern := "%" + strings.ToLower(search) + "%"
		return db.Where(
			"lower(name) LIKE ? OR lower(email) LIKE ? OR contact_number LIKE ? OR employee_code LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
}

func (r *repository) Search(ctx context.Context, search string, offset, limit int) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(searchScope(search)).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&empls).Error
	return empls, err
}

func (r *repository) CountSearch(ctx context.Context, search string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(searchScope(search)).
		Count(&total).Error
	return total, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Select("id", "name", "employee_code").
		Order("name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	query := `DELETE FROM employees WHERE id = $1`
	res, err := r.execer().ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
