// Package sqlstore a record store on a relational database, sqlite or postgres
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver
	"github.com/pkg/errors"
	"github.com/willie68/GoTikaMeta/internal/dao/interfaces"
	"github.com/willie68/GoTikaMeta/internal/logging"
	"github.com/willie68/GoTikaMeta/internal/schema"
	_ "modernc.org/sqlite" // sqlite driver
)

var logger = logging.New().WithName("sqlstore")

// Config configuration of the database
type Config struct {
	Driver string `yaml:"driver" toml:"driver"`
	DSN    string `yaml:"dsn" toml:"dsn"`
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Store record store backed by a sql database
type Store struct {
	db *sql.DB
	d  dialect
	q  querier
}

// txStore the record store view of a running transaction
type txStore struct {
	Store
}

var _ interfaces.RecordStore = &Store{}
var _ interfaces.RecordStore = &txStore{}

// Open opens the database and creates all missing tables
func Open(ctx context.Context, cfg Config) (*Store, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	dsn := cfg.DSN
	if _, ok := d.(sqliteDialect); ok {
		if dsn == "" {
			return nil, errors.New("no database file set")
		}
		if dir := filepath.Dir(dsn); dir != "" {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return nil, errors.Wrap(err, "creating database directory")
			}
		}
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
		}
	}
	db, err := sql.Open(d.driver(), dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if _, ok := d.(sqliteDialect); ok {
		// sqlite allows only one writer
		db.SetMaxOpenConns(1)
	}
	s := &Store{db: db, d: d, q: db}
	if err := s.Ping(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "connecting database")
	}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating tables")
	}
	logger.Infof("database opened, driver: %s", d.driver())
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	if err := schema.Validate(); err != nil {
		return err
	}
	for _, td := range schema.Tables() {
		if _, err := s.db.ExecContext(ctx, createTable(s.d, td)); err != nil {
			return errors.Wrapf(err, "table %s", td.Name)
		}
	}
	return nil
}

// Insert inserting a row, an id in the row is ignored
func (s *Store) Insert(ctx context.Context, table string, row interfaces.Row) (int64, error) {
	cols := columns(row, schema.ColID)
	if len(cols) == 0 {
		return 0, fmt.Errorf("insert into %s: empty row", table)
	}
	qc := make([]string, len(cols))
	ph := make([]string, len(cols))
	args := make([]any, len(cols))
	for x, c := range cols {
		qc[x] = quote(c)
		ph[x] = s.d.placeholder(x + 1)
		args[x] = row[c]
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s", quote(table), strings.Join(qc, ", "), strings.Join(ph, ", "), quote(schema.ColID))
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrapf(err, "insert into %s", table)
	}
	defer rows.Close()
	var id int64
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, errors.Wrapf(err, "insert into %s", table)
		}
		return 0, fmt.Errorf("insert into %s: no id returned", table)
	}
	if err := rows.Scan(&id); err != nil {
		return 0, errors.Wrapf(err, "insert into %s", table)
	}
	return id, rows.Err()
}

// Update updating the row with the id of the row, false if there is no such row
func (s *Store) Update(ctx context.Context, table string, row interfaces.Row) (bool, error) {
	id, ok := row[schema.ColID]
	if !ok || id == nil {
		return false, fmt.Errorf("update %s: row without id", table)
	}
	cols := columns(row, schema.ColID)
	if len(cols) == 0 {
		return false, fmt.Errorf("update %s: empty row", table)
	}
	set := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for x, c := range cols {
		set[x] = fmt.Sprintf("%s = %s", quote(c), s.d.placeholder(x+1))
		args = append(args, row[c])
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s", quote(table), strings.Join(set, ", "), quote(schema.ColID), s.d.placeholder(len(args)))
	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, errors.Wrapf(err, "update %s", table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete deleting all rows matching the filter, an empty filter is not allowed
func (s *Store) Delete(ctx context.Context, table string, filter interfaces.Filter) (bool, error) {
	where, args, err := s.where(filter)
	if err != nil {
		return false, errors.Wrapf(err, "delete from %s", table)
	}
	res, err := s.q.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s", quote(table), where), args...)
	if err != nil {
		return false, errors.Wrapf(err, "delete from %s", table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetOne getting the first row matching the filter, null columns are not part of the row
func (s *Store) GetOne(ctx context.Context, table string, filter interfaces.Filter) (interfaces.Row, error) {
	where, args, err := s.where(filter)
	if err != nil {
		return nil, errors.Wrapf(err, "select from %s", table)
	}
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s ORDER BY %s LIMIT 1", quote(table), where, quote(schema.ColID))
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "select from %s", table)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, errors.Wrapf(err, "select from %s", table)
		}
		return nil, interfaces.ErrNoRecord
	}
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for x := range vals {
		ptrs[x] = &vals[x]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, errors.Wrapf(err, "select from %s", table)
	}
	row := make(interfaces.Row)
	for x, c := range cols {
		switch v := vals[x].(type) {
		case nil:
		case []byte:
			row[c] = string(v)
		default:
			row[c] = v
		}
	}
	return row, rows.Err()
}

// InTransaction runs fn in a transaction, the transaction is rolled back if fn returns an error
func (s *Store) InTransaction(ctx context.Context, fn func(tx interfaces.RecordStore) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(&txStore{Store{db: s.db, d: s.d, q: tx}}); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			logger.Errorf("rollback failed: %v", rerr)
		}
		return err
	}
	return errors.Wrap(tx.Commit(), "commit transaction")
}

// InTransaction a nested transaction joins the running one
func (t *txStore) InTransaction(_ context.Context, fn func(tx interfaces.RecordStore) error) error {
	return fn(t)
}

// Ping checking the connection to the database
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closing the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Close a transaction view never closes the database
func (t *txStore) Close() error {
	return nil
}

func (s *Store) where(filter interfaces.Filter) (string, []any, error) {
	cols := columns(interfaces.Row(filter))
	if len(cols) == 0 {
		return "", nil, errors.New("empty filter")
	}
	conds := make([]string, len(cols))
	args := make([]any, len(cols))
	for x, c := range cols {
		conds[x] = fmt.Sprintf("%s = %s", quote(c), s.d.placeholder(x+1))
		args[x] = filter[c]
	}
	return strings.Join(conds, " AND "), args, nil
}

// columns the sorted column names of the row without the excluded ones
func columns(row interfaces.Row, exclude ...string) []string {
	cols := make([]string, 0, len(row))
	for c := range row {
		skip := false
		for _, e := range exclude {
			if c == e {
				skip = true
			}
		}
		if !skip {
			cols = append(cols, c)
		}
	}
	sort.Strings(cols)
	return cols
}
