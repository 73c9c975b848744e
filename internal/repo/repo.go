package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/college_admin/internal/apperr"
)

// Repository is the CRUD surface shared by every entity. Each call commits on
// its own; there is no optimistic concurrency, so a Get followed by an Update
// can overwrite a concurrent writer's change.
type Repository[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetAllByFilter(ctx context.Context, f Filter) ([]T, error)
	Get(ctx context.Context, f Filter, track bool) (*T, error)
	Add(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, entity *T) error
}

type GormRepo[T any] struct {
	DB *gorm.DB
}

func New[T any](db *gorm.DB) *GormRepo[T] {
	return &GormRepo[T]{DB: db}
}

// GetAll returns every row in primary key order, soft-deleted rows included.
func (r *GormRepo[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.GetAllByFilter(ctx, nil)
}

func (r *GormRepo[T]) GetAllByFilter(ctx context.Context, f Filter) ([]T, error) {
	q, err := f.apply(r.DB.WithContext(ctx).Model(new(T)))
	if err != nil {
		return nil, err
	}

	items := make([]T, 0)
	if err := q.Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey}}).
		Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

// Get returns the first row in key order matching f, or apperr.ErrNotFound.
// The result is always a detached value. A tracked read also takes a row lock
// where the dialect supports it, which holds when the repository runs inside a
// caller's transaction.
func (r *GormRepo[T]) Get(ctx context.Context, f Filter, track bool) (*T, error) {
	q, err := f.apply(r.DB.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if track && supportsRowLocks(r.DB) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var entity T
	if err := q.First(&entity).Error; err != nil {
		return nil, translate(err)
	}
	return &entity, nil
}

func (r *GormRepo[T]) Add(ctx context.Context, entity *T) (*T, error) {
	if entity == nil {
		return nil, fmt.Errorf("%w: entity is nil", apperr.ErrValidation)
	}
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return nil, translate(err)
	}
	return entity, nil
}

// Update writes every column of entity. The entity must already have a row.
func (r *GormRepo[T]) Update(ctx context.Context, entity *T) error {
	if entity == nil {
		return fmt.Errorf("%w: entity is nil", apperr.ErrValidation)
	}
	res := r.DB.WithContext(ctx).Model(entity).Select("*").Omit(clause.Associations).Updates(entity)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrMissingWhereClause) {
			return fmt.Errorf("%w: entity has no identity", apperr.ErrNotFound)
		}
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes the row physically. Soft deletes are an Update by the caller.
func (r *GormRepo[T]) Delete(ctx context.Context, entity *T) error {
	if entity == nil {
		return fmt.Errorf("%w: entity is nil", apperr.ErrValidation)
	}
	res := r.DB.WithContext(ctx).Delete(entity)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrMissingWhereClause) {
			return fmt.Errorf("%w: entity has no identity", apperr.ErrNotFound)
		}
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func supportsRowLocks(db *gorm.DB) bool {
	return db.Dialector != nil && db.Dialector.Name() == "postgres"
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", apperr.ErrAlreadyExists, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated), strings.Contains(err.Error(), "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: referenced record does not exist", apperr.ErrValidation)
	default:
		return fmt.Errorf("repo: %w", err)
	}
}
