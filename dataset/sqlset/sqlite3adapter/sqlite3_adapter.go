/*
Package sqlite3adapter provides an implementation of the
Adapter interface in the sqlset package that works
over a SQLite3 database.
*/
package sqlite3adapter

import (
	"database/sql"
	"fmt"

	"github.com/pbanos/sprout/dataset/sqlset"

	// Import of SQLite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type dialect struct{}

/*
New takes a path to a SQLite3 database file (or ":memory:") and returns an
Adapter that works on the database or an error if it fails to open it.
*/
func New(path string) (sqlset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite3 database %s: %v", path, err)
	}
	// an in-memory database lives only as long as its connection
	db.SetMaxOpenConns(1)
	return sqlset.NewAdapter(db, dialect{}), nil
}

func (dialect) Placeholder(int) string {
	return "?"
}

func (dialect) PrimaryKey(column string) string {
	return fmt.Sprintf(`"%s" INTEGER PRIMARY KEY AUTOINCREMENT`, column)
}
