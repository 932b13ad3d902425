package repositories

import (
	"context"
	"time"
)

// Record is implemented by pointers to owner-scoped models.
type Record[T any] interface {
	*T
	GetID() string
	SetID(id string)
	GetUserID() string
	SetUserID(id string)
	Touch(now time.Time)
}

// Condition is an equality match on a stored field.
type Condition struct {
	Field string
	Value any
}

// SortKey orders results by a stored field.
type SortKey struct {
	Field string
	Desc  bool
}

// Filter narrows a List call. Field names are the storage names shared by the
// SQL columns and the BSON keys.
type Filter struct {
	Where []Condition
	Since time.Time // date >= Since when non-zero
	Sort  []SortKey
}

// OwnedRepository is the only way handlers reach owner-scoped collections:
// every method takes the owner and constrains the query with it.
type OwnedRepository[T any] interface {
	List(ctx context.Context, ownerID string, f Filter) ([]T, error)
	Get(ctx context.Context, ownerID, id string) (*T, error)
	Create(ctx context.Context, ownerID string, rec *T) error
	Update(ctx context.Context, ownerID string, rec *T) error
	Delete(ctx context.Context, ownerID, id string) error
}
