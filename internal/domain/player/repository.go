package player

import "context"

// ListFilter narrows and pages the player listing exposed by the query layer.
type ListFilter struct {
	// NameQuery is matched case-insensitively as a substring of the name.
	NameQuery string
	Offset    int
	Limit     int
}

// Repository describes player read needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Player, bool, error)
	List(ctx context.Context, filter ListFilter) ([]Player, int, error)
}

// Store is the write surface the reconciler sees inside one transaction.
// FindByKey must observe rows staged earlier in the same transaction so that
// a key repeated within one run updates instead of inserting twice.
type Store interface {
	FindByKey(ctx context.Context, name, team string) (Player, bool, error)
	Insert(ctx context.Context, p Player) (int64, error)
	Update(ctx context.Context, p Player) error
}

// TxRunner scopes a Store to a single transaction: fn returning nil commits,
// any error rolls everything back.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(Store) error) error
}
