package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// PackageKey identifies an installed package within one environment.
type PackageKey string

// KeyFor derives the key of a (source, package) pair.
// Source names never contain ':' so the first separator is unambiguous.
func KeyFor(source, packageRef string) PackageKey {
	return PackageKey(source + ":" + packageRef)
}

// Split returns the source and package reference encoded in the key.
func (k PackageKey) Split() (source, packageRef string) {
	source, packageRef, _ = strings.Cut(string(k), ":")
	return source, packageRef
}

// String implements fmt.Stringer.
func (k PackageKey) String() string {
	return string(k)
}

// InstalledRecord describes one package installed in an environment.
type InstalledRecord struct {
	Source      string `json:"source"`
	Package     string `json:"package"`
	Version     string `json:"version"`
	Explicit    bool   `json:"explicit"`
	InstalledAt string `json:"installed_at,omitempty"`
}

// Key returns the record's derived key.
func (r InstalledRecord) Key() PackageKey {
	return KeyFor(r.Source, r.Package)
}

// PackageRef is a parsed USER/PACKAGE reference.
type PackageRef struct {
	User string
	Name string
}

// String returns the canonical USER/PACKAGE form.
func (p PackageRef) String() string {
	return p.User + "/" + p.Name
}

// ParsePackageRef parses a USER/PACKAGE reference.
func ParsePackageRef(ref string) (PackageRef, error) {
	user, name, ok := strings.Cut(ref, "/")
	user = strings.TrimSpace(user)
	name = strings.TrimSpace(name)
	if !ok || user == "" || name == "" {
		return PackageRef{}, zerr.With(zerr.Wrap(ErrInvalidPackageRef, "invalid package ref"), "ref", ref)
	}
	return PackageRef{User: user, Name: name}, nil
}

// ValidateSourceName reports whether name can be used as a source name.
func ValidateSourceName(name string) error {
	if name == "" || strings.ContainsAny(name, ":/") || strings.TrimSpace(name) != name {
		return zerr.With(zerr.Wrap(ErrInvalidSourceName, "invalid source name"), "source", name)
	}
	return nil
}

// IsWildcardVersion reports whether a version constraint accepts any version.
func IsWildcardVersion(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "latest", "*":
		return true
	default:
		return false
	}
}
