package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bjjtracker/internal/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMRepository is a GORM implementation of OwnedRepository.
type GORMRepository[T any, PT Record[T]] struct {
	db   *gorm.DB
	name string
}

// NewGORMRepository creates a repository for one model; name is used in
// not-found messages ("Training not found").
func NewGORMRepository[T any, PT Record[T]](db *gorm.DB, name string) *GORMRepository[T, PT] {
	return &GORMRepository[T, PT]{
		db:   db,
		name: name,
	}
}

// List retrieves the owner's records matching f.
func (r *GORMRepository[T, PT]) List(ctx context.Context, ownerID string, f Filter) ([]T, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	for _, c := range f.Where {
		q = q.Where(clause.Eq{Column: clause.Column{Name: c.Field}, Value: c.Value})
	}
	if !f.Since.IsZero() {
		q = q.Where("date >= ?", f.Since.UTC())
	}
	for _, s := range f.Sort {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: s.Field}, Desc: s.Desc})
	}

	records := make([]T, 0)
	if err := q.Find(&records).Error; err != nil {
		return nil, apperr.Storage(fmt.Sprintf("failed to list %s records", r.name), err)
	}
	return records, nil
}

// Get retrieves a single record of the owner by its ID.
func (r *GORMRepository[T, PT]) Get(ctx context.Context, ownerID, id string) (*T, error) {
	rec := new(T)
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", ownerID, id).First(rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound()
		}
		return nil, apperr.Storage(fmt.Sprintf("failed to get %s %s", r.name, id), err)
	}
	return rec, nil
}

// Create inserts rec under ownerID, whatever owner it carried before.
func (r *GORMRepository[T, PT]) Create(ctx context.Context, ownerID string, rec *T) error {
	p := PT(rec)
	p.SetUserID(ownerID)
	if p.GetID() == "" {
		p.SetID(uuid.New().String())
	}
	p.Touch(time.Now().UTC())

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return apperr.Storage(fmt.Sprintf("failed to create %s", r.name), err)
	}
	return nil
}

// Update writes every column of rec; a record of another owner is reported
// as not found.
func (r *GORMRepository[T, PT]) Update(ctx context.Context, ownerID string, rec *T) error {
	p := PT(rec)
	if p.GetID() == "" {
		return r.notFound()
	}
	p.SetUserID(ownerID)
	p.Touch(time.Now().UTC())

	res := r.db.WithContext(ctx).Model(rec).
		Where("user_id = ?", ownerID).
		Select("*").Omit("created_at").
		Updates(rec)
	if res.Error != nil {
		return apperr.Storage(fmt.Sprintf("failed to update %s %s", r.name, p.GetID()), res.Error)
	}
	if res.RowsAffected == 0 {
		return r.notFound()
	}
	return nil
}

// Delete removes a record of the owner by its ID.
func (r *GORMRepository[T, PT]) Delete(ctx context.Context, ownerID, id string) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", ownerID, id).Delete(new(T))
	if res.Error != nil {
		return apperr.Storage(fmt.Sprintf("failed to delete %s %s", r.name, id), res.Error)
	}
	if res.RowsAffected == 0 {
		return r.notFound()
	}
	return nil
}

func (r *GORMRepository[T, PT]) notFound() error {
	return apperr.NotFound(fmt.Sprintf("%s not found", r.name))
}
