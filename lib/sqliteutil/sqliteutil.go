package sqliteutil

import (
	"database/sql"
	"os"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

func isRemote(target string) bool {
	return strings.HasPrefix(target, "libsql://") ||
		strings.HasPrefix(target, "http://") ||
		strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "ws://") ||
		strings.HasPrefix(target, "wss://")
}

// OpenDB opens either a local sqlite file or a remote libsql database
// depending on the shape of `target`, then applies `schema` to it.
func OpenDB(schema, target string) (*sql.DB, error) {
	db, err := open(target)
	if err != nil {
		return nil, err
	}
	if schema != "" {
		_, err = db.Exec(schema)
		if err != nil && !strings.Contains(err.Error(), "already exists") {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

func open(target string) (*sql.DB, error) {
	if isRemote(target) {
		return sql.Open("libsql", target)
	}

	if target != ":memory:" {
		_, statErr := os.Stat(target)
		if os.IsNotExist(statErr) {
			f, err := os.Create(target)
			if err != nil {
				return nil, err
			}
			f.Close()
		}
	}

	db, err := sql.Open("sqlite", target)
	if err != nil {
		return nil, err
	}
	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
