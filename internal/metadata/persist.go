package metadata

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/willie68/GoTikaMeta/internal/dao/interfaces"
	"github.com/willie68/GoTikaMeta/internal/errs"
	"github.com/willie68/GoTikaMeta/internal/filetype"
	"github.com/willie68/GoTikaMeta/internal/schema"
)

var errNoBaseRow = errors.New("no base row")

// Load loads the record of the variant with the base id
func Load(ctx context.Context, store interfaces.RecordStore, variant filetype.FileType, id int64) (*Record, error) {
	return load(ctx, store, variant, interfaces.Filter{schema.ColID: id}, strconv.FormatInt(id, 10))
}

// LoadByHash loads the record of the variant with the resource hash
func LoadByHash(ctx context.Context, store interfaces.RecordStore, variant filetype.FileType, hash string) (*Record, error) {
	return load(ctx, store, variant, interfaces.Filter{schema.ColResourceHash: hash}, hash)
}

// Lookup loads the record of the resource hash with the variant it was stored with.
// Rows without a stored variant fall back to the stored format.
func Lookup(ctx context.Context, store interfaces.RecordStore, hash string) (*Record, error) {
	row, err := getOne(ctx, store, schema.BaseTable, interfaces.Filter{schema.ColResourceHash: hash}, hash)
	if err != nil {
		return nil, err
	}
	return fromRow(ctx, store, storedVariant(row), row)
}

func storedVariant(row interfaces.Row) filetype.FileType {
	if ft, ok := filetype.Parse(asString(row[schema.ColVariant])); ok {
		return ft
	}
	return filetype.VariantFor(asString(row[schema.FieldFormat]))
}

func load(ctx context.Context, store interfaces.RecordStore, variant filetype.FileType, filter interfaces.Filter, key string) (*Record, error) {
	row, err := getOne(ctx, store, schema.BaseTable, filter, key)
	if err != nil {
		return nil, err
	}
	return fromRow(ctx, store, variant, row)
}

func fromRow(ctx context.Context, store interfaces.RecordStore, variant filetype.FileType, row interfaces.Row) (*Record, error) {
	if !filetype.IsSupported(variant) {
		variant = filetype.Other
	}
	r := &Record{
		Variant:       variant,
		supplementary: make(map[string]string),
	}
	r.ID = asInt(row[schema.ColID])
	r.ResourceHash = asString(row[schema.ColResourceHash])
	r.TimeCreated = asInt(row[schema.ColTimeCreated])
	r.TimeModified = asInt(row[schema.ColTimeModified])
	for _, f := range schema.BaseKeyMap() {
		r.setBase(f.Name, asString(row[f.Name]))
	}
	if !r.HasSupplementary() {
		return r, nil
	}
	srow, err := getOne(ctx, store, schema.SupplementaryTable(variant), interfaces.Filter{schema.ColResourceHash: r.ResourceHash}, r.ResourceHash)
	if err != nil {
		return nil, err
	}
	for _, f := range schema.SupplementaryKeyMap(variant) {
		if v := asString(srow[f.Name]); v != "" {
			r.supplementary[f.Name] = v
		}
	}
	return r, nil
}

func getOne(ctx context.Context, store interfaces.RecordStore, table string, filter interfaces.Filter, key string) (interfaces.Row, error) {
	row, err := store.GetOne(ctx, table, filter)
	if err != nil {
		if errors.Is(err, interfaces.ErrNoRecord) {
			return nil, &errs.NotFoundError{Table: table, Key: key}
		}
		return nil, err
	}
	return row, nil
}

// Create stores the record as a new record, base and supplementary data in one transaction
func (r *Record) Create(ctx context.Context, store interfaces.RecordStore) error {
	if r.ID != 0 {
		_, err := store.GetOne(ctx, schema.BaseTable, interfaces.Filter{schema.ColID: r.ID})
		if err == nil {
			return &errs.AlreadyExistsError{ID: r.ID}
		}
		if !errors.Is(err, interfaces.ErrNoRecord) {
			return err
		}
	}
	now := time.Now().Unix()
	if r.TimeCreated == 0 {
		r.TimeCreated = now
	}
	if r.TimeModified == 0 {
		r.TimeModified = now
	}
	var id int64
	err := store.InTransaction(ctx, func(tx interfaces.RecordStore) error {
		var err error
		id, err = tx.Insert(ctx, schema.BaseTable, r.baseRow())
		if err != nil {
			return err
		}
		if r.HasSupplementary() {
			return r.writeSupplementary(ctx, tx)
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "create metadata %s", r.ResourceHash)
	}
	r.ID = id
	return nil
}

// Update updates the stored record, false if the base row does not exist anymore
func (r *Record) Update(ctx context.Context, store interfaces.RecordStore) (bool, error) {
	if r.ID == 0 {
		return false, &errs.NoIdError{Op: "update"}
	}
	modified := r.TimeModified
	r.TimeModified = time.Now().Unix()
	err := store.InTransaction(ctx, func(tx interfaces.RecordStore) error {
		row := r.baseRow()
		row[schema.ColID] = r.ID
		ok, err := tx.Update(ctx, schema.BaseTable, row)
		if err != nil {
			return err
		}
		if !ok {
			return errNoBaseRow
		}
		if r.HasSupplementary() {
			return r.writeSupplementary(ctx, tx)
		}
		return nil
	})
	if err != nil {
		r.TimeModified = modified
		if errors.Is(err, errNoBaseRow) {
			return false, nil
		}
		return false, errors.Wrapf(err, "update metadata %d", r.ID)
	}
	return true, nil
}

// Delete deletes base and supplementary data of the record in one transaction
func (r *Record) Delete(ctx context.Context, store interfaces.RecordStore) (bool, error) {
	if r.ID == 0 {
		return false, &errs.NoIdError{Op: "delete"}
	}
	err := store.InTransaction(ctx, func(tx interfaces.RecordStore) error {
		ok, err := tx.Delete(ctx, schema.BaseTable, interfaces.Filter{schema.ColID: r.ID})
		if err != nil {
			return err
		}
		if !ok {
			return &errs.NotFoundError{Table: schema.BaseTable, Key: strconv.FormatInt(r.ID, 10)}
		}
		if !r.HasSupplementary() {
			return nil
		}
		table := schema.SupplementaryTable(r.Variant)
		srow, err := tx.GetOne(ctx, table, interfaces.Filter{schema.ColResourceHash: r.ResourceHash})
		if err != nil {
			if errors.Is(err, interfaces.ErrNoRecord) {
				return &errs.NoIdError{Op: fmt.Sprintf("delete %s", table)}
			}
			return err
		}
		_, err = tx.Delete(ctx, table, interfaces.Filter{schema.ColID: srow[schema.ColID]})
		return err
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// writeSupplementary inserts the supplementary row or updates a stray one with the same hash
func (r *Record) writeSupplementary(ctx context.Context, tx interfaces.RecordStore) error {
	table := schema.SupplementaryTable(r.Variant)
	row := r.supplementaryRow()
	existing, err := tx.GetOne(ctx, table, interfaces.Filter{schema.ColResourceHash: r.ResourceHash})
	if err != nil {
		if !errors.Is(err, interfaces.ErrNoRecord) {
			return err
		}
		_, err = tx.Insert(ctx, table, row)
		return err
	}
	row[schema.ColID] = existing[schema.ColID]
	_, err = tx.Update(ctx, table, row)
	return err
}

// baseRow all base columns, unset fields are null
func (r *Record) baseRow() interfaces.Row {
	row := interfaces.Row{
		schema.ColResourceHash: r.ResourceHash,
		schema.ColVariant:      string(r.Variant),
		schema.ColTimeCreated:  r.TimeCreated,
		schema.ColTimeModified: r.TimeModified,
	}
	for _, f := range schema.BaseKeyMap() {
		row[f.Name] = r.column(f)
	}
	return row
}

// supplementaryRow all supplementary columns of the variant, unset fields are null
func (r *Record) supplementaryRow() interfaces.Row {
	row := interfaces.Row{
		schema.ColResourceHash: r.ResourceHash,
	}
	for _, f := range schema.SupplementaryKeyMap(r.Variant) {
		row[f.Name] = r.column(f)
	}
	return row
}

func (r *Record) column(f schema.Field) any {
	v, ok := r.Get(f.Name)
	if !ok {
		return nil
	}
	return typed(f, v)
}

func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func asInt(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float64:
		return int64(x)
	case string:
		i, _ := strconv.ParseInt(x, 10, 64)
		return i
	}
	return 0
}
