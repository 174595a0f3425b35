package sqlstore

import (
	"fmt"
	"strings"

	"github.com/willie68/GoTikaMeta/internal/schema"
)

// dialect the sql differences of the supported databases
type dialect interface {
	driver() string
	placeholder(n int) string
	idColumn() string
	columnType(k schema.Kind) string
}

type sqliteDialect struct{}

func (sqliteDialect) driver() string {
	return "sqlite"
}

func (sqliteDialect) placeholder(_ int) string {
	return "?"
}

func (sqliteDialect) idColumn() string {
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

func (sqliteDialect) columnType(k schema.Kind) string {
	if k == schema.Int {
		return "INTEGER"
	}
	return "TEXT"
}

type postgresDialect struct{}

func (postgresDialect) driver() string {
	return "pgx"
}

func (postgresDialect) placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func (postgresDialect) idColumn() string {
	return "BIGSERIAL PRIMARY KEY"
}

func (postgresDialect) columnType(k schema.Kind) string {
	if k == schema.Int {
		return "BIGINT"
	}
	return "TEXT"
}

func dialectFor(name string) (dialect, error) {
	switch strings.ToLower(name) {
	case "", "sqlite", "sqlite3":
		return sqliteDialect{}, nil
	case "postgres", "postgresql", "pgx":
		return postgresDialect{}, nil
	}
	return nil, fmt.Errorf("unknown database driver: %s", name)
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// createTable builds the ddl of a table, id and resourcehash are always part of the table
func createTable(d dialect, td schema.TableDef) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(quote(td.Name))
	b.WriteString(" (\n")
	b.WriteString(fmt.Sprintf("\t%s %s,\n", quote(schema.ColID), d.idColumn()))
	b.WriteString(fmt.Sprintf("\t%s TEXT NOT NULL UNIQUE", quote(schema.ColResourceHash)))
	for _, c := range td.Columns {
		b.WriteString(fmt.Sprintf(",\n\t%s %s", quote(c.Name), d.columnType(c.Kind)))
	}
	b.WriteString("\n)")
	return b.String()
}
