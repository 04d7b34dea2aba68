package store

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/vexbolts/hunt-tracker/internal/config"
	_ "github.com/mattn/go-sqlite3"
)

// Store owns the live database file and the only two connections to it: a
// cached read-only one for queries and a cached read-write one for the
// short append-only transactions. Nothing else in the process touches the
// file directly.
type Store struct {
	log          *log.Logger
	path         string
	templatePath string

	mu sync.Mutex
	ro *sql.DB
	rw *sql.DB
}

// Open prepares the template and live database files if either is missing,
// then connects.
func Open(cfg config.Config, logger *log.Logger) (*Store, error) {
	s := &Store{
		log:          logger,
		path:         cfg.DBPath,
		templatePath: cfg.TemplatePath,
	}

	if err := s.ensureTemplate(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		if err := s.Reset(); err != nil {
			return nil, err
		}
		return s, nil
	}

	if err := s.connect(); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureTemplate builds the template database from the embedded schema and
// seed dataset. An already-present template is trusted as-is, so a
// regenerated one dropped into place wins over the embedded copy.
func (s *Store) ensureTemplate() error {
	if _, err := os.Stat(s.templatePath); !os.IsNotExist(err) {
		return err
	}

	db, err := sql.Open("sqlite3", "file:"+s.templatePath+"?_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("failed to open template: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(SchemaSQL); err != nil {
		// Clean up so we don't leave a half-built template behind
		os.Remove(s.templatePath)
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	if _, err := db.Exec(SeedSQL); err != nil {
		os.Remove(s.templatePath)
		return fmt.Errorf("failed to seed template: %w", err)
	}

	s.log.Printf("built template database at %s", s.templatePath)
	return nil
}

func (s *Store) connect() error {
	ro, err := sql.Open("sqlite3", "file:"+s.path+"?mode=ro&_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("failed to open read-only connection: %w", err)
	}

	rw, err := sql.Open("sqlite3", "file:"+s.path+"?_foreign_keys=on")
	if err != nil {
		ro.Close()
		return fmt.Errorf("failed to open read-write connection: %w", err)
	}
	// A single writer matches the host's one-game-thread model and keeps
	// write transactions from queueing behind each other inside sqlite.
	rw.SetMaxOpenConns(1)

	s.mu.Lock()
	s.ro = ro
	s.rw = rw
	s.mu.Unlock()
	return nil
}

func (s *Store) closeLocked() {
	if s.ro != nil {
		s.ro.Close()
		s.ro = nil
	}
	if s.rw != nil {
		s.rw.Close()
		s.rw = nil
	}
}

// Close releases both cached connections.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

// Read runs fn inside a read-only snapshot. Reads may run concurrently
// with each other and with one writer.
func (s *Store) Read(fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	db := s.ro
	s.mu.Unlock()
	if db == nil {
		return fmt.Errorf("store is closed")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin read: %w", err)
	}
	defer tx.Rollback()

	return fn(tx)
}

// Write runs fn inside a transaction on the read-write connection. Any
// error from fn rolls the whole transaction back; nothing partial is ever
// committed.
func (s *Store) Write(fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	db := s.rw
	s.mu.Unlock()
	if db == nil {
		return fmt.Errorf("store is closed")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin write: %w", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Reset discards the live database and recopies the template, then stamps
// the reset time. The delete happens before the copy: a failure in between
// leaves no live database, and the next Open rebuilds from the template.
func (s *Store) Reset() error {
	s.mu.Lock()
	s.closeLocked()

	if err := s.replaceFromTemplate(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	if err := s.connect(); err != nil {
		return err
	}

	return s.Write(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO MetaData (Key, Value) VALUES ("StartTime", datetime())`)
		return err
	})
}

func (s *Store) replaceFromTemplate() error {
	for _, side := range []string{s.path, s.path + "-wal", s.path + "-shm"} {
		if err := os.Remove(side); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete %s: %w", side, err)
		}
	}

	src, err := os.Open(s.templatePath)
	if err != nil {
		return fmt.Errorf("failed to open template: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy template: %w", err)
	}
	return nil
}
