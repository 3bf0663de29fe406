package storage

import (
	"context"
	"fmt"
	"os"
	"path"

	bolt "go.etcd.io/bbolt"
)

// Database is one bolt file. The docs bucket holds the documents,
// the tasks bucket the pending background work and one bucket per
// result collection the materialized map-reduce rows.
type Database struct {
	name        string
	databaseDir string
	db          *bolt.DB

	search *SearchIndex
}

func (d *Database) Name() string {
	return d.name
}

func (d *Database) String() string {
	stats, err := d.Stats(context.Background())
	if err == nil {
		return fmt.Sprintf("<Database name=%q stats=%+v>", d.name, stats)
	}

	return fmt.Sprintf("<Database name=%q stats=%v>", d.name, err)
}

func (d *Database) Update(fn func(tx *bolt.Tx) error) error {
	return d.db.Update(fn)
}

func (d *Database) View(fn func(tx *bolt.Tx) error) error {
	return d.db.View(fn)
}

func (d *Database) Close() error {
	if d.search != nil {
		if err := d.search.Close(); err != nil {
			return err
		}
	}
	return d.db.Close()
}

func (s *Storage) CreateDatabase(ctx context.Context, name string) (*Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	databaseDir := path.Join(s.path, name+".d")

	db, err := bolt.Open(path.Join(s.path, name), 0666, nil)
	if err != nil {
		return nil, err
	}

	database := &Database{
		name:        name,
		databaseDir: databaseDir,
		db:          db,
	}

	search, err := database.OpenSearchIndex()
	if err != nil {
		db.Close() // nolint: errcheck
		return nil, err
	}
	database.search = search

	s.dbs[name] = database

	return database, nil
}

func (s *Storage) DeleteDatabase(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, ok := s.dbs[name]
	if !ok {
		return fmt.Errorf("unknown database %q", name)
	}

	err := db.Close()
	if err != nil {
		return err
	}

	err = os.Remove(path.Join(s.path, name))
	if err != nil {
		return err
	}
	err = os.RemoveAll(db.databaseDir)
	if err != nil {
		return err
	}

	delete(s.dbs, name)

	return nil
}

func (s *Storage) Databases(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.dbs))
	var i int
	for name := range s.dbs {
		names[i] = name
		i++
	}

	return names, nil
}

func (s *Storage) Database(ctx context.Context, name string) (*Database, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, ok := s.dbs[name]
	if !ok {
		return nil, fmt.Errorf("database %q not found", name)
	}

	return db, nil
}
