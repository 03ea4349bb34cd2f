package domain

// OpKind is the kind of a planned operation.
type OpKind string

const (
	// OpTarget installs the requested package, which is not installed yet.
	OpTarget OpKind = "target"
	// OpUpdate moves an installed package to a different version.
	OpUpdate OpKind = "update"
	// OpInstall installs a dependency pulled in by another item.
	OpInstall OpKind = "install"
)

// Guide returns the guide that carries out the operation.
func (k OpKind) Guide() string {
	if k == OpUpdate {
		return GuideUpdate
	}
	return GuideInstall
}

// OpItem is one planned state change.
type OpItem struct {
	Kind    OpKind
	Source  string
	Package string
	// Version is the concrete version to install.
	Version string
	// Installed is the currently installed version for updates.
	Installed string
	// Footnote is a short inline annotation.
	Footnote string
	// Explicit is the value of the record's explicit flag after the operation.
	Explicit bool
}

// Key returns the package key the item acts on.
func (i OpItem) Key() PackageKey {
	return KeyFor(i.Source, i.Package)
}

// OperationPlan is an ordered list of operations with per-item notes.
// An empty plan means the requested package is already installed at that version.
type OperationPlan struct {
	Items []OpItem
	// Notes maps item indices to longer annotations.
	Notes map[int]string
}

// Empty reports whether the plan has nothing to do.
func (p *OperationPlan) Empty() bool {
	return p == nil || len(p.Items) == 0
}

// Contains reports whether an item already acts on key.
func (p *OperationPlan) Contains(key PackageKey) bool {
	for _, it := range p.Items {
		if it.Key() == key {
			return true
		}
	}
	return false
}

// Add appends an item and returns its index.
func (p *OperationPlan) Add(item OpItem) int {
	p.Items = append(p.Items, item)
	return len(p.Items) - 1
}

// Note attaches a note to the item at index.
func (p *OperationPlan) Note(index int, text string) {
	if p.Notes == nil {
		p.Notes = make(map[int]string)
	}
	p.Notes[index] = text
}

// PlannedVersions maps every item's package key to the version the plan moves it to.
func (p *OperationPlan) PlannedVersions() map[PackageKey]string {
	if p == nil {
		return nil
	}
	out := make(map[PackageKey]string, len(p.Items))
	for _, it := range p.Items {
		out[it.Key()] = it.Version
	}
	return out
}
