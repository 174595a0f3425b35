package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willie68/GoTikaMeta/internal/dao/interfaces"
	"github.com/willie68/GoTikaMeta/internal/schema"
)

func openT(t *testing.T) *Store {
	s, err := Open(context.Background(), Config{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "tika.db"),
	})
	require.Nil(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCRUD(t *testing.T) {
	ast := assert.New(t)
	ctx := context.Background()
	s := openT(t)

	id, err := s.Insert(ctx, schema.BaseTable, interfaces.Row{
		"resourcehash": "abc",
		"title":        "Test title",
		"timecreated":  int64(100),
	})
	ast.Nil(err)
	ast.True(id > 0)

	row, err := s.GetOne(ctx, schema.BaseTable, interfaces.Filter{"id": id})
	ast.Nil(err)
	ast.Equal("abc", row["resourcehash"])
	ast.Equal("Test title", row["title"])
	ast.Equal(int64(100), row["timecreated"])
	_, ok := row["creator"]
	ast.False(ok)

	ok, err = s.Update(ctx, schema.BaseTable, interfaces.Row{"id": id, "title": "Updated"})
	ast.Nil(err)
	ast.True(ok)

	row, err = s.GetOne(ctx, schema.BaseTable, interfaces.Filter{"resourcehash": "abc"})
	ast.Nil(err)
	ast.Equal("Updated", row["title"])

	ok, err = s.Update(ctx, schema.BaseTable, interfaces.Row{"id": id + 100, "title": "Updated"})
	ast.Nil(err)
	ast.False(ok)

	ok, err = s.Delete(ctx, schema.BaseTable, interfaces.Filter{"id": id})
	ast.Nil(err)
	ast.True(ok)

	ok, err = s.Delete(ctx, schema.BaseTable, interfaces.Filter{"id": id})
	ast.Nil(err)
	ast.False(ok)

	_, err = s.GetOne(ctx, schema.BaseTable, interfaces.Filter{"id": id})
	ast.True(errors.Is(err, interfaces.ErrNoRecord))
}

func TestUniqueHash(t *testing.T) {
	ast := assert.New(t)
	ctx := context.Background()
	s := openT(t)

	_, err := s.Insert(ctx, "tika_pdf_metadata", interfaces.Row{"resourcehash": "abc", "pagecount": int64(3)})
	ast.Nil(err)
	_, err = s.Insert(ctx, "tika_pdf_metadata", interfaces.Row{"resourcehash": "abc", "pagecount": int64(4)})
	ast.NotNil(err)
}

func TestEmptyFilter(t *testing.T) {
	ast := assert.New(t)
	s := openT(t)

	_, err := s.Delete(context.Background(), schema.BaseTable, interfaces.Filter{})
	ast.NotNil(err)
}

func TestTransactionRollback(t *testing.T) {
	ast := assert.New(t)
	ctx := context.Background()
	s := openT(t)

	err := s.InTransaction(ctx, func(tx interfaces.RecordStore) error {
		_, err := tx.Insert(ctx, schema.BaseTable, interfaces.Row{"resourcehash": "abc"})
		ast.Nil(err)
		return errors.New("failing")
	})
	ast.NotNil(err)

	_, err = s.GetOne(ctx, schema.BaseTable, interfaces.Filter{"resourcehash": "abc"})
	ast.True(errors.Is(err, interfaces.ErrNoRecord))

	err = s.InTransaction(ctx, func(tx interfaces.RecordStore) error {
		return tx.InTransaction(ctx, func(tx interfaces.RecordStore) error {
			_, err := tx.Insert(ctx, schema.BaseTable, interfaces.Row{"resourcehash": "def"})
			return err
		})
	})
	ast.Nil(err)
	_, err = s.GetOne(ctx, schema.BaseTable, interfaces.Filter{"resourcehash": "def"})
	ast.Nil(err)
}

func TestCreateTable(t *testing.T) {
	ast := assert.New(t)

	td := schema.TableDef{Name: "tika_pdf_metadata", Columns: []schema.Column{{Name: "pagecount", Kind: schema.Int}}}
	ddl := createTable(postgresDialect{}, td)
	ast.Contains(ddl, `"id" BIGSERIAL PRIMARY KEY`)
	ast.Contains(ddl, `"pagecount" BIGINT`)

	ddl = createTable(sqliteDialect{}, td)
	ast.Contains(ddl, `"id" INTEGER PRIMARY KEY AUTOINCREMENT`)
	ast.Contains(ddl, `"resourcehash" TEXT NOT NULL UNIQUE`)

	_, err := dialectFor("oracle")
	ast.NotNil(err)
}
