package metadata

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willie68/GoTikaMeta/internal/dao/interfaces"
	"github.com/willie68/GoTikaMeta/internal/dao/sqlstore"
	"github.com/willie68/GoTikaMeta/internal/errs"
	"github.com/willie68/GoTikaMeta/internal/filetype"
	"github.com/willie68/GoTikaMeta/internal/schema"
	"github.com/willie68/GoTikaMeta/pkg/model"
)

const hash = "da39a3ee5e6b4b0d3255bfef95601890afd80709"

func openT(t *testing.T) *sqlstore.Store {
	s, err := sqlstore.Open(context.Background(), sqlstore.Config{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "tika.db"),
	})
	require.Nil(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func documentRaw() model.RawMetadata {
	return model.RawMetadata{
		"Content-Type":    "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"meta:creator":    "Moodle",
		"meta:title":      "Test title",
		"meta:word-count": "3000",
		"meta:page-count": "3",
		"Company":         []any{"Catalyst", "Moodle HQ"},
	}
}

func TestPopulate(t *testing.T) {
	ast := assert.New(t)

	r := FromRaw(hash, documentRaw())
	ast.Equal(int64(0), r.ID)
	ast.Equal(filetype.Document, r.Variant)
	ast.Equal("Moodle", r.Creator)
	ast.Equal("Test title", r.Title)
	ast.Equal("application/vnd.openxmlformats-officedocument.wordprocessingml.document", r.Format)

	wc, ok := r.Int("wordcount")
	ast.True(ok)
	ast.Equal(int64(3000), wc)
	v, _ := r.Get("company")
	ast.Equal("Catalyst, Moodle HQ", v)
	_, ok = r.Get("manager")
	ast.False(ok)
}

func TestBaseVariant(t *testing.T) {
	ast := assert.New(t)

	raw := model.RawMetadata{"Content-Type": "application/zip", "dc:title": "Archive", "Page-Count": "3"}
	r := FromRaw(hash, raw)
	ast.Equal(filetype.Other, r.Variant)
	ast.False(r.HasSupplementary())
	ast.Equal("Archive", r.Title)
	_, ok := r.Get("pagecount")
	ast.False(ok)
	ast.False(r.Set("pagecount", "4"))
}

func TestRoundTrip(t *testing.T) {
	ast := assert.New(t)
	ctx := context.Background()
	store := openT(t)

	r := FromRaw(hash, documentRaw())
	err := r.Create(ctx, store)
	ast.Nil(err)
	ast.True(r.ID > 0)
	ast.True(r.TimeCreated > 0)

	l, err := Load(ctx, store, filetype.Document, r.ID)
	ast.Nil(err)
	ast.Equal(r.GetRecord(), l.GetRecord())

	l, err = LoadByHash(ctx, store, filetype.Document, hash)
	ast.Nil(err)
	ast.Equal(r.GetRecord(), l.GetRecord())

	l, err = Lookup(ctx, store, hash)
	ast.Nil(err)
	ast.Equal(filetype.Document, l.Variant)
	ast.Equal(r.GetRecord(), l.GetRecord())
}

func TestLookupMultiValueMimetype(t *testing.T) {
	ast := assert.New(t)
	ctx := context.Background()
	store := openT(t)

	raw := model.RawMetadata{
		"Content-Type":    []any{"image/jpeg", "image/x-thumb"},
		"tiff:ImageWidth": "640",
	}
	r := FromRaw(hash, raw)
	ast.Equal(filetype.Image, r.Variant)
	ast.Equal("image/jpeg, image/x-thumb", r.Format)
	ast.Nil(r.Create(ctx, store))

	l, err := Lookup(ctx, store, hash)
	ast.Nil(err)
	ast.Equal(filetype.Image, l.Variant)
	w, ok := l.Int("width")
	ast.True(ok)
	ast.Equal(int64(640), w)

	ok, err = l.Delete(ctx, store)
	ast.Nil(err)
	ast.True(ok)
	_, err = store.GetOne(ctx, schema.SupplementaryTable(filetype.Image), interfaces.Filter{"resourcehash": hash})
	ast.True(errors.Is(err, interfaces.ErrNoRecord))
}

func TestLookupFormatWithoutMimetype(t *testing.T) {
	ast := assert.New(t)
	ctx := context.Background()
	store := openT(t)

	r := FromRaw(hash, model.RawMetadata{"dc:format": "application/pdf; version=1.4"})
	ast.Equal(filetype.Other, r.Variant)
	ast.Equal("application/pdf; version=1.4", r.Format)
	ast.Nil(r.Create(ctx, store))

	l, err := Lookup(ctx, store, hash)
	ast.Nil(err)
	ast.Equal(filetype.Other, l.Variant)
	ast.Equal(r.GetRecord(), l.GetRecord())

	ok, err := l.Update(ctx, store)
	ast.Nil(err)
	ast.True(ok)
}

func TestLookupWithoutStoredVariant(t *testing.T) {
	ast := assert.New(t)
	ctx := context.Background()
	store := openT(t)

	_, err := store.Insert(ctx, schema.BaseTable, interfaces.Row{"resourcehash": hash, "format": "application/zip", "title": "Archive"})
	ast.Nil(err)

	l, err := Lookup(ctx, store, hash)
	ast.Nil(err)
	ast.Equal(filetype.Other, l.Variant)
	ast.Equal("Archive", l.Title)
}

func TestGetRecord(t *testing.T) {
	ast := assert.New(t)
	ctx := context.Background()
	store := openT(t)

	r := FromRaw(hash, documentRaw())
	ast.Nil(r.Create(ctx, store))

	m := r.GetRecord()
	ast.Equal(r.ID, m["id"])
	ast.Equal(int64(3000), m["wordcount"])
	ast.Equal("Moodle", m["creator"])
	ast.Equal(hash, m["resourcehash"])

	srow, err := store.GetOne(ctx, schema.SupplementaryTable(filetype.Document), interfaces.Filter{"resourcehash": hash})
	ast.Nil(err)
	ast.NotNil(srow["id"])
}

func TestCreateExisting(t *testing.T) {
	ast := assert.New(t)
	ctx := context.Background()
	store := openT(t)

	r := FromRaw(hash, documentRaw())
	ast.Nil(r.Create(ctx, store))

	err := r.Create(ctx, store)
	var ae *errs.AlreadyExistsError
	ast.True(errors.As(err, &ae))
}

func TestCreateUpdatesStraySupplementary(t *testing.T) {
	ast := assert.New(t)
	ctx := context.Background()
	store := openT(t)

	table := schema.SupplementaryTable(filetype.Document)
	sid, err := store.Insert(ctx, table, interfaces.Row{"resourcehash": hash, "wordcount": int64(1)})
	ast.Nil(err)

	r := FromRaw(hash, documentRaw())
	ast.Nil(r.Create(ctx, store))

	srow, err := store.GetOne(ctx, table, interfaces.Filter{"resourcehash": hash})
	ast.Nil(err)
	ast.Equal(sid, srow["id"])
	ast.Equal(int64(3000), srow["wordcount"])
}

func TestUpdate(t *testing.T) {
	ast := assert.New(t)
	ctx := context.Background()
	store := openT(t)

	r := FromRaw(hash, documentRaw())
	_, err := r.Update(ctx, store)
	var ni *errs.NoIdError
	ast.True(errors.As(err, &ni))

	ast.Nil(r.Create(ctx, store))
	created := r.TimeCreated

	ast.True(r.Set("creator", "Moodle 2.0"))
	ast.True(r.Set("title", "Updated title"))
	ast.True(r.Set("wordcount", "4000"))
	ast.False(r.Set("wordcount", "many"))
	ast.True(r.Set("pagecount", ""))

	ok, err := r.Update(ctx, store)
	ast.Nil(err)
	ast.True(ok)

	l, err := LoadByHash(ctx, store, filetype.Document, hash)
	ast.Nil(err)
	ast.Equal("Moodle 2.0", l.Creator)
	ast.Equal("Updated title", l.Title)
	wc, _ := l.Int("wordcount")
	ast.Equal(int64(4000), wc)
	_, ok = l.Get("pagecount")
	ast.False(ok)
	ast.Equal(created, l.TimeCreated)
}

func TestUpdateRecreatesSupplementary(t *testing.T) {
	ast := assert.New(t)
	ctx := context.Background()
	store := openT(t)

	r := FromRaw(hash, documentRaw())
	ast.Nil(r.Create(ctx, store))

	table := schema.SupplementaryTable(filetype.Document)
	ok, err := store.Delete(ctx, table, interfaces.Filter{"resourcehash": hash})
	ast.Nil(err)
	ast.True(ok)

	_, err = LoadByHash(ctx, store, filetype.Document, hash)
	ast.True(errs.IsNotFound(err))

	ok, err = r.Update(ctx, store)
	ast.Nil(err)
	ast.True(ok)

	_, err = store.GetOne(ctx, table, interfaces.Filter{"resourcehash": hash})
	ast.Nil(err)
}

func TestDelete(t *testing.T) {
	ast := assert.New(t)
	ctx := context.Background()
	store := openT(t)

	r := FromRaw(hash, documentRaw())
	_, err := r.Delete(ctx, store)
	var ni *errs.NoIdError
	ast.True(errors.As(err, &ni))

	ast.Nil(r.Create(ctx, store))
	ok, err := r.Delete(ctx, store)
	ast.Nil(err)
	ast.True(ok)

	_, err = store.GetOne(ctx, schema.BaseTable, interfaces.Filter{"resourcehash": hash})
	ast.True(errors.Is(err, interfaces.ErrNoRecord))
	_, err = store.GetOne(ctx, schema.SupplementaryTable(filetype.Document), interfaces.Filter{"resourcehash": hash})
	ast.True(errors.Is(err, interfaces.ErrNoRecord))

	_, err = r.Delete(ctx, store)
	ast.True(errs.IsNotFound(err))
}

func TestDeleteMissingSupplementary(t *testing.T) {
	ast := assert.New(t)
	ctx := context.Background()
	store := openT(t)

	r := FromRaw(hash, documentRaw())
	ast.Nil(r.Create(ctx, store))
	_, err := store.Delete(ctx, schema.SupplementaryTable(filetype.Document), interfaces.Filter{"resourcehash": hash})
	ast.Nil(err)

	_, err = r.Delete(ctx, store)
	var ni *errs.NoIdError
	ast.True(errors.As(err, &ni))

	// rolled back, the base row is still there
	_, err = store.GetOne(ctx, schema.BaseTable, interfaces.Filter{"id": r.ID})
	ast.Nil(err)
}

func TestLoadNotFound(t *testing.T) {
	ast := assert.New(t)
	store := openT(t)

	_, err := Load(context.Background(), store, filetype.PDF, 4711)
	ast.True(errs.IsNotFound(err))
	_, err = Lookup(context.Background(), store, "unknown")
	ast.True(errs.IsNotFound(err))
}

// failingStore fails every insert into one table
type failingStore struct {
	interfaces.RecordStore
	table string
}

func (f *failingStore) Insert(ctx context.Context, table string, row interfaces.Row) (int64, error) {
	if table == f.table {
		return 0, errors.New("disk full")
	}
	return f.RecordStore.Insert(ctx, table, row)
}

func (f *failingStore) InTransaction(ctx context.Context, fn func(tx interfaces.RecordStore) error) error {
	return f.RecordStore.InTransaction(ctx, func(tx interfaces.RecordStore) error {
		return fn(&failingStore{RecordStore: tx, table: f.table})
	})
}

func TestCreateIsAtomic(t *testing.T) {
	ast := assert.New(t)
	ctx := context.Background()
	store := openT(t)

	fs := &failingStore{RecordStore: store, table: schema.SupplementaryTable(filetype.Document)}
	r := FromRaw(hash, documentRaw())
	err := r.Create(ctx, fs)
	ast.NotNil(err)
	ast.Equal(int64(0), r.ID)

	_, err = store.GetOne(ctx, schema.BaseTable, interfaces.Filter{"resourcehash": hash})
	ast.True(errors.Is(err, interfaces.ErrNoRecord))
	_, err = store.GetOne(ctx, schema.SupplementaryTable(filetype.Document), interfaces.Filter{"resourcehash": hash})
	ast.True(errors.Is(err, interfaces.ErrNoRecord))
}
