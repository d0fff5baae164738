package sem

import "strings"

// Famous finds well-known entities inside the standard distribution by dotted
// path. This is deliberately separate from resolution proper: editor-facing
// paths should not become interesting to the model itself.
type Famous struct {
	Model Model
	// Perspective is the unit whose dependencies are searched.
	Perspective UnitID
}

// defaultLibraryUnits are the built-in units whose items get the
// default-library modifier.
var defaultLibraryUnits = map[string]bool{
	"std":        true,
	"core":       true,
	"alloc":      true,
	"test":       true,
	"proc_macro": true,
}

// IsDefaultLibraryName reports whether name is one of the built-in units.
func IsDefaultLibraryName(name string) bool {
	return defaultLibraryUnits[name]
}

// IsDefaultLibrary reports whether the unit is part of the standard
// distribution.
func (f Famous) IsDefaultLibrary(unit UnitID) bool {
	if f.Model == nil || !unit.IsValid() {
		return false
	}
	return IsDefaultLibraryName(f.Model.UnitName(unit))
}

// Std returns the std unit visible from the perspective unit.
func (f Famous) Std() (UnitID, bool) {
	return f.findUnit("std")
}

// Core returns the core unit visible from the perspective unit.
func (f Famous) Core() (UnitID, bool) {
	return f.findUnit("core")
}

// FindByPath resolves a dotted path like "core.ops.Fn" to the unit that owns
// it. Only the leading unit segment is resolved; the remainder is returned
// for the caller to match against definition names.
func (f Famous) FindByPath(path string) (unit UnitID, rest string, ok bool) {
	head, tail, found := strings.Cut(path, ".")
	if !found {
		head = path
	}
	unit, ok = f.findUnit(head)
	if !ok {
		return NoUnit, "", false
	}
	return unit, tail, true
}

func (f Famous) findUnit(name string) (UnitID, bool) {
	if f.Model == nil {
		return NoUnit, false
	}
	if f.Perspective.IsValid() && f.Model.UnitName(f.Perspective) == name {
		return f.Perspective, true
	}
	return f.Model.DependencyUnit(f.Perspective, name)
}
