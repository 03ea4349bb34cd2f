package domain

import (
	"bytes"
	"encoding/json"
	"slices"

	"go.trai.ch/zerr"
)

// Environment is an insertion-ordered collection of installed records.
type Environment struct {
	keys    []PackageKey
	records map[PackageKey]InstalledRecord
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{records: make(map[PackageKey]InstalledRecord)}
}

// Len returns the number of records.
func (e *Environment) Len() int {
	if e == nil {
		return 0
	}
	return len(e.keys)
}

// Get returns the record stored under key.
func (e *Environment) Get(key PackageKey) (InstalledRecord, bool) {
	if e == nil {
		return InstalledRecord{}, false
	}
	rec, ok := e.records[key]
	return rec, ok
}

// Put stores rec under its derived key. An existing record keeps its position.
func (e *Environment) Put(rec InstalledRecord) {
	key := rec.Key()
	if _, ok := e.records[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.records[key] = rec
}

// Delete removes the record stored under key and reports whether it existed.
func (e *Environment) Delete(key PackageKey) bool {
	if e == nil {
		return false
	}
	if _, ok := e.records[key]; !ok {
		return false
	}
	delete(e.records, key)
	e.keys = slices.DeleteFunc(e.keys, func(k PackageKey) bool { return k == key })
	return true
}

// Keys returns the record keys in insertion order.
func (e *Environment) Keys() []PackageKey {
	if e == nil {
		return nil
	}
	return slices.Clone(e.keys)
}

// Records returns the records in insertion order.
func (e *Environment) Records() []InstalledRecord {
	if e == nil {
		return nil
	}
	out := make([]InstalledRecord, 0, len(e.keys))
	for _, k := range e.keys {
		out = append(out, e.records[k])
	}
	return out
}

// MarshalJSON writes the records as an object in insertion order.
func (e *Environment) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range e.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(string(k))
		if err != nil {
			return nil, err
		}
		rb, err := json.Marshal(e.records[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(rb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of records, keeping the order of its keys.
func (e *Environment) UnmarshalJSON(data []byte) error {
	e.keys = nil
	e.records = make(map[PackageKey]InstalledRecord)
	return decodeOrderedObject(data, func(key string, dec *json.Decoder) error {
		var rec InstalledRecord
		if err := dec.Decode(&rec); err != nil {
			return err
		}
		k := PackageKey(key)
		if _, dup := e.records[k]; !dup {
			e.keys = append(e.keys, k)
		}
		e.records[k] = rec
		return nil
	})
}

// Database maps environment names to their installed records.
type Database struct {
	names []string
	envs  map[string]*Environment
}

// NewDatabase creates an empty database.
func NewDatabase() *Database {
	return &Database{envs: make(map[string]*Environment)}
}

// EnvNames returns the environment names in insertion order.
func (d *Database) EnvNames() []string {
	return slices.Clone(d.names)
}

// Env returns the named environment, or nil when it does not exist.
func (d *Database) Env(name string) *Environment {
	return d.envs[name]
}

// EnsureEnv returns the named environment, creating it when missing.
func (d *Database) EnsureEnv(name string) *Environment {
	if env, ok := d.envs[name]; ok {
		return env
	}
	env := NewEnvironment()
	d.names = append(d.names, name)
	d.envs[name] = env
	return env
}

// Get returns the record for key in the named environment.
func (d *Database) Get(env string, key PackageKey) (InstalledRecord, bool) {
	return d.Env(env).Get(key)
}

// Put stores rec in the named environment.
func (d *Database) Put(env string, rec InstalledRecord) {
	d.EnsureEnv(env).Put(rec)
}

// Delete removes the record for key from the named environment.
func (d *Database) Delete(env string, key PackageKey) bool {
	return d.Env(env).Delete(key)
}

// Records returns the records of the named environment in insertion order.
func (d *Database) Records(env string) []InstalledRecord {
	return d.Env(env).Records()
}

// Validate checks that every record is stored under its own derived key.
func (d *Database) Validate() error {
	for _, name := range d.names {
		env := d.envs[name]
		for _, k := range env.keys {
			if rec := env.records[k]; rec.Key() != k {
				err := zerr.With(zerr.Wrap(ErrDatabaseCorrupt, "record stored under a foreign key"), "env", name)
				return zerr.With(err, "key", string(k))
			}
		}
	}
	return nil
}

type databaseJSON struct {
	Envs orderedEnvs `json:"envs"`
}

type orderedEnvs struct {
	db *Database
}

// MarshalJSON writes the database as {"envs": {...}} in insertion order.
func (d *Database) MarshalJSON() ([]byte, error) {
	return json.Marshal(databaseJSON{Envs: orderedEnvs{db: d}})
}

// UnmarshalJSON reads {"envs": {...}}, keeping environment and record order.
func (d *Database) UnmarshalJSON(data []byte) error {
	fresh := NewDatabase()
	wrapper := databaseJSON{Envs: orderedEnvs{db: fresh}}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	*d = *fresh
	return nil
}

func (o orderedEnvs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range o.db.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		nb, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		eb, err := o.db.envs[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(nb)
		buf.WriteByte(':')
		buf.Write(eb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o orderedEnvs) UnmarshalJSON(data []byte) error {
	return decodeOrderedObject(data, func(name string, dec *json.Decoder) error {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		env := o.db.EnsureEnv(name)
		return env.UnmarshalJSON(raw)
	})
}

var errNotObject = zerr.New("expected a JSON object")

// decodeOrderedObject walks a JSON object key by key. A JSON null is treated as empty.
func decodeOrderedObject(data []byte, each func(key string, dec *json.Decoder) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return zerr.With(errNotObject, "offset", dec.InputOffset())
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return zerr.With(errNotObject, "offset", dec.InputOffset())
		}
		if err := each(key, dec); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
