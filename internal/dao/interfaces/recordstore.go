package interfaces

import (
	"context"
	"errors"
)

// ErrNoRecord no record matched the filter
var ErrNoRecord = errors.New("no record found")

// Row a single record of a table, column name to value
type Row map[string]any

// Filter equality filter, column name to value
type Filter map[string]any

// RecordStore generic record store working on table names
type RecordStore interface {
	Insert(ctx context.Context, table string, row Row) (int64, error)      // inserting a row, returning the new id
	Update(ctx context.Context, table string, row Row) (bool, error)       // updating the row with the id of the row
	Delete(ctx context.Context, table string, filter Filter) (bool, error) // deleting all matching rows, false if nothing was deleted
	GetOne(ctx context.Context, table string, filter Filter) (Row, error)  // getting one matching row, ErrNoRecord if nothing matches

	InTransaction(ctx context.Context, fn func(tx RecordStore) error) error // running fn in one transaction, committed if fn returns nil
	Ping(ctx context.Context) error                                         // checking the connection
	Close() error
}
