package sqlite

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/golang-migrate/migrate/v4/database"
)

// migrationDriver adapts an open *sql.DB to the golang-migrate database
// driver interface. The stock sqlite drivers pull in their own CGo or
// transpiled sqlite builds, while this one reuses the connection already
// backed by the embedded sqlite.
type migrationDriver struct {
	conn *sql.DB
}

var _ database.Driver = (*migrationDriver)(nil)

func newMigrationDriver(conn *sql.DB) *migrationDriver {
	return &migrationDriver{conn: conn}
}

// Open is part of the driver interface but is only used for URL-based
// construction, which this driver does not support.
func (d *migrationDriver) Open(url string) (database.Driver, error) {
	return nil, fmt.Errorf("migration driver must be constructed with an open connection")
}

// Close is a no-op because the connection is owned by the DB struct.
func (d *migrationDriver) Close() error {
	return nil
}

// Lock is a no-op; sqlite access is already serialized by busy_timeout and
// the single-process usage model.
func (d *migrationDriver) Lock() error {
	return nil
}

// Unlock is a no-op, see Lock.
func (d *migrationDriver) Unlock() error {
	return nil
}

// Run executes a single migration.
func (d *migrationDriver) Run(migration io.Reader) error {
	statements, err := io.ReadAll(migration)
	if err != nil {
		return fmt.Errorf("reading migration: %w", err)
	}
	if _, err := d.conn.Exec(string(statements)); err != nil {
		return fmt.Errorf("executing migration: %w", err)
	}
	return nil
}

// SetVersion records the current migration version.
func (d *migrationDriver) SetVersion(version int, dirty bool) error {
	if err := d.ensureVersionTable(); err != nil {
		return err
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM schema_migrations"); err != nil {
		_ = tx.Rollback()
		return err
	}
	if version >= 0 {
		dirtyInt := 0
		if dirty {
			dirtyInt = 1
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)", version, dirtyInt); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Version returns the current migration version.
func (d *migrationDriver) Version() (int, bool, error) {
	if err := d.ensureVersionTable(); err != nil {
		return database.NilVersion, false, err
	}

	var version int
	var dirty int
	err := d.conn.QueryRow("SELECT version, dirty FROM schema_migrations LIMIT 1").Scan(&version, &dirty)
	if err == sql.ErrNoRows {
		return database.NilVersion, false, nil
	}
	if err != nil {
		return database.NilVersion, false, err
	}
	return version, dirty == 1, nil
}

// Drop removes all user tables.
func (d *migrationDriver) Drop() error {
	rows, err := d.conn.Query("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		return err
	}
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return err
		}
		tables = append(tables, name)
	}
	if err := rows.Close(); err != nil {
		return err
	}

	for _, table := range tables {
		if _, err := d.conn.Exec("DROP TABLE IF EXISTS " + table); err != nil {
			return err
		}
	}
	return nil
}

func (d *migrationDriver) ensureVersionTable() error {
	_, err := d.conn.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER NOT NULL,
		dirty INTEGER NOT NULL
	)`)
	return err
}
