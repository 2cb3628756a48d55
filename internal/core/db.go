package core

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	dataDirName = ".pocascade"
	dbFileName  = "index.sqlite"
)

func dbPath(root string) string {
	return filepath.Join(root, dataDirName, dbFileName)
}

func ensureDataDir(root string) (string, error) {
	dir := filepath.Join(root, dataDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// IndexExists reports whether root has a reference index.
func IndexExists(root string) bool {
	_, err := os.Stat(dbPath(root))
	return err == nil
}

func openDBAt(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s", path))
	if err != nil {
		return nil, err
	}
	// Graph mutations are already serialized; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	return db, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS refs (
			target TEXT NOT NULL,
			source TEXT NOT NULL,
			PRIMARY KEY (target, source)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_refs_source ON refs(source);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func loadEdges(db *sql.DB) ([]Edge, error) {
	rows, err := db.Query("SELECT target, source FROM refs ORDER BY target, source")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var edges []Edge
	for rows.Next() {
		var e Edge
		if err := rows.Scan(&e.Target, &e.Source); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

func insertEdge(tx *sql.Tx, target, source string) error {
	_, err := tx.Exec(
		`INSERT INTO refs (target, source) VALUES (?, ?)
		 ON CONFLICT(target, source) DO NOTHING`,
		target, source,
	)
	return err
}
