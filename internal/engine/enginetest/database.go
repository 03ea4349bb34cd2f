package enginetest

import (
	"encoding/json"
	"sync"

	"go.trai.ch/ypms/internal/core/domain"
)

// Database is an in-memory ports.PackageDatabase that stores the serialized form.
type Database struct {
	mu     sync.Mutex
	data   []byte
	writes int
}

// NewDatabase creates a database holding the given records in env.
func NewDatabase(env string, records ...domain.InstalledRecord) *Database {
	db := &Database{}
	if err := db.Update(func(d *domain.Database) error {
		d.EnsureEnv(env)
		for _, rec := range records {
			d.Put(env, rec)
		}
		return nil
	}); err != nil {
		panic(err)
	}
	db.writes = 0
	return db
}

// Load implements ports.PackageDatabase.
func (d *Database) Load() (*domain.Database, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load()
}

func (d *Database) load() (*domain.Database, error) {
	db := domain.NewDatabase()
	if d.data == nil {
		return db, nil
	}
	if err := json.Unmarshal(d.data, db); err != nil {
		return nil, err
	}
	return db, nil
}

// Update implements ports.PackageDatabase.
func (d *Database) Update(fn func(db *domain.Database) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	db, err := d.load()
	if err != nil {
		return err
	}
	if err := fn(db); err != nil {
		return err
	}
	data, err := json.Marshal(db)
	if err != nil {
		return err
	}
	d.data = data
	d.writes++
	return nil
}

// Writes returns how many updates were saved.
func (d *Database) Writes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes
}

// Record returns the record for source:ref in env.
func (d *Database) Record(env, source, ref string) (domain.InstalledRecord, bool) {
	db, err := d.Load()
	if err != nil {
		return domain.InstalledRecord{}, false
	}
	return db.Get(env, domain.KeyFor(source, ref))
}

// Installed is a shorthand for an InstalledRecord.
func Installed(source, ref, version string, explicit bool) domain.InstalledRecord {
	return domain.InstalledRecord{Source: source, Package: ref, Version: version, Explicit: explicit}
}
