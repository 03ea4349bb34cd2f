package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	"go.trai.ch/zerr"
)

// SourceConfig is the repository descriptor served as a source's ypms.json.
type SourceConfig struct {
	ID          string `json:"ypms.repo.id"`
	Name        string `json:"ypms.repo.name"`
	Description string `json:"ypms.repo.desc,omitempty"`
	BaseURL     string `json:"ypms.repo.url"`
	IndexPath   string `json:"ypms.repo.path.index"`
	PackagePath string `json:"ypms.repo.path.package"`
}

// Validate checks that the descriptor carries every required key.
func (c *SourceConfig) Validate() error {
	missing := ""
	switch {
	case c.ID == "":
		missing = "ypms.repo.id"
	case c.Name == "":
		missing = "ypms.repo.name"
	case c.BaseURL == "":
		missing = "ypms.repo.url"
	case c.IndexPath == "":
		missing = "ypms.repo.path.index"
	case c.PackagePath == "":
		missing = "ypms.repo.path.package"
	}
	if missing != "" {
		return zerr.With(zerr.Wrap(ErrSourceConfigInvalid, "missing key"), "key", missing)
	}
	return nil
}

// IndexURL returns the URL of the source's package index.
func (c *SourceConfig) IndexURL() string {
	return strings.TrimRight(c.BaseURL, "/") + c.IndexPath
}

// PackageURL returns the URL of a package's metadata.
func (c *SourceConfig) PackageURL(user, name string) string {
	r := strings.NewReplacer("{USER_ID}", user, "{PACKAGE_ID}", name)
	return r.Replace(strings.TrimRight(c.BaseURL, "/") + c.PackagePath)
}

// PackageInfo is a package's metadata as served by a source.
type PackageInfo struct {
	// Source and Ref are filled in by the registry client, not decoded.
	Source string     `json:"-"`
	Ref    PackageRef `json:"-"`

	DefaultRelease string            `json:"package.release.default,omitempty"`
	Aliases        map[string]string `json:"package.release.alias,omitempty"`
	Releases       []string          `json:"package.release.list,omitempty"`
	ReleaseURL     string            `json:"package.release.url"`
}

// ReleaseURLFor expands the release URL template for a concrete release id.
func (p *PackageInfo) ReleaseURLFor(releaseID string) string {
	return strings.ReplaceAll(p.ReleaseURL, "{RELEASE_ID}", releaseID)
}

// HasRelease reports whether the release list names id.
func (p *PackageInfo) HasRelease(id string) bool {
	for _, r := range p.Releases {
		if r == id {
			return true
		}
	}
	return false
}

// ResolveTag maps a tag or alias onto a concrete release id.
// An empty tag selects the default release, then the "latest" alias, then the first listed release.
func (p *PackageInfo) ResolveTag(tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		switch {
		case p.DefaultRelease != "":
			tag = p.DefaultRelease
		case p.Aliases["latest"] != "":
			tag = p.Aliases["latest"]
		case len(p.Releases) > 0:
			tag = p.Releases[0]
		}
	}

	resolved := tag
	if alias, ok := p.Aliases[tag]; ok && alias != "" {
		resolved = alias
	}

	if resolved == "" {
		return "", zerr.With(zerr.Wrap(ErrVersionResolution, "no release available"), "package", p.Ref.String())
	}
	if len(p.Releases) > 0 && !p.HasRelease(resolved) {
		err := zerr.With(zerr.Wrap(ErrVersionResolution, "release not listed"), "package", p.Ref.String())
		return "", zerr.With(err, "version", tag)
	}
	return resolved, nil
}

// Release is the metadata of one concrete release.
type Release struct {
	ID      string           `json:"-"`
	Guides  map[string]Guide `json:"release.guides,omitempty"`
	Depends []DependencySpec `json:"release.depends,omitempty"`
}

// Guide returns the named guide.
func (r *Release) Guide(name string) (Guide, bool) {
	g, ok := r.Guides[name]
	return g, ok
}

// DependencySpec is one entry of a release's dependency list.
type DependencySpec struct {
	// Source overrides the dependent's source when non-empty.
	Source  string `json:"source,omitempty"`
	Package string `json:"package"`
	// Version is a concrete tag, an alias, or empty for any version.
	Version string `json:"version,omitempty"`
}

// ParseDependency parses the string form of a dependency:
// user/pkg, user/pkg@tag, source:user/pkg or source:user/pkg@tag.
func ParseDependency(s string) (DependencySpec, error) {
	var spec DependencySpec
	body := strings.TrimSpace(s)
	if src, rest, ok := strings.Cut(body, ":"); ok && strings.Contains(rest, "/") {
		spec.Source = strings.TrimSpace(src)
		body = rest
	}
	if ref, ver, ok := strings.Cut(body, "@"); ok {
		body = ref
		spec.Version = strings.TrimSpace(ver)
	}
	spec.Package = strings.TrimSpace(body)
	if _, err := ParsePackageRef(spec.Package); err != nil {
		return DependencySpec{}, zerr.With(zerr.Wrap(ErrInvalidDependency, "invalid dependency"), "entry", s)
	}
	return spec, nil
}

// UnmarshalJSON accepts either the string form or {package, version?, source?}.
func (d *DependencySpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		spec, err := ParseDependency(s)
		if err != nil {
			return err
		}
		*d = spec
		return nil
	}

	type plain DependencySpec
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return zerr.Wrap(err, ErrInvalidDependency.Error())
	}
	p.Source = strings.TrimSpace(p.Source)
	p.Package = strings.TrimSpace(p.Package)
	p.Version = strings.TrimSpace(p.Version)
	if _, err := ParsePackageRef(p.Package); err != nil {
		return zerr.With(zerr.Wrap(ErrInvalidDependency, "dependency object missing 'package'"), "entry", string(data))
	}
	*d = DependencySpec(p)
	return nil
}

// String returns the canonical string form.
func (d DependencySpec) String() string {
	s := d.Package
	if d.Source != "" {
		s = d.Source + ":" + s
	}
	if d.Version != "" {
		s += "@" + d.Version
	}
	return s
}

// SourceOr returns the dependency's source, defaulting to fallback.
func (d DependencySpec) SourceOr(fallback string) string {
	if d.Source != "" {
		return d.Source
	}
	return fallback
}

// IndexEntry is one package listed in a source index.
type IndexEntry struct {
	Package     string `json:"package"`
	Description string `json:"desc,omitempty"`
}

// PackageIndex is the list of packages a source offers.
type PackageIndex struct {
	Source  string
	Entries []IndexEntry
}

// UnmarshalJSON accepts a list of refs or entries, an object keyed by ref,
// or either of those nested under "packages".
func (p *PackageIndex) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	if data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		for _, item := range items {
			entry, err := decodeIndexItem(item)
			if err != nil {
				return err
			}
			p.Entries = append(p.Entries, entry)
		}
		return nil
	}

	var nested struct {
		Packages json.RawMessage `json:"packages"`
	}
	if err := json.Unmarshal(data, &nested); err == nil && len(nested.Packages) > 0 {
		return p.UnmarshalJSON(nested.Packages)
	}

	return decodeOrderedObject(data, func(key string, dec *json.Decoder) error {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if !strings.Contains(key, "/") {
			return nil
		}
		entry := IndexEntry{Package: key}
		var desc string
		if json.Unmarshal(raw, &desc) == nil {
			entry.Description = desc
		} else {
			var obj struct {
				Desc        string `json:"desc"`
				Description string `json:"description"`
			}
			if json.Unmarshal(raw, &obj) == nil {
				entry.Description = obj.Desc
				if entry.Description == "" {
					entry.Description = obj.Description
				}
			}
		}
		p.Entries = append(p.Entries, entry)
		return nil
	})
}

func decodeIndexItem(raw json.RawMessage) (IndexEntry, error) {
	var ref string
	if json.Unmarshal(raw, &ref) == nil {
		return IndexEntry{Package: ref}, nil
	}
	var entry IndexEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return IndexEntry{}, err
	}
	return entry, nil
}

// Refs returns the package references of the index in order.
func (p *PackageIndex) Refs() []string {
	out := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		out = append(out, e.Package)
	}
	return out
}
