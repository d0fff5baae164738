package sem_test

import (
	"testing"

	"shine/internal/sem"
	"shine/internal/source"
)

// unitModel scripts a tiny crate graph on top of the syntactic model: unit 1
// is the local crate, unit 2 is std.
type unitModel struct {
	*sem.SyntacticModel
}

func (m *unitModel) UnitName(u sem.UnitID) string {
	switch u {
	case 1:
		return "app"
	case 2:
		return "std"
	default:
		return ""
	}
}

func (m *unitModel) DependencyUnit(_ sem.UnitID, name string) (sem.UnitID, bool) {
	if name == "std" {
		return 2, true
	}
	return sem.NoUnit, false
}

func newUnitModel() *unitModel {
	fs := source.NewFileSet()
	fs.AddVirtual("test.rs", []byte(""))
	return &unitModel{SyntacticModel: sem.NewSyntacticModel(fs, nil)}
}

func TestIsDefaultLibraryName(t *testing.T) {
	for _, name := range []string{"std", "core", "alloc", "test", "proc_macro"} {
		if !sem.IsDefaultLibraryName(name) {
			t.Errorf("%q should be a default library", name)
		}
	}
	for _, name := range []string{"serde", "app", ""} {
		if sem.IsDefaultLibraryName(name) {
			t.Errorf("%q should not be a default library", name)
		}
	}
}

func TestFamousStd(t *testing.T) {
	f := sem.Famous{Model: newUnitModel(), Perspective: 1}
	unit, ok := f.Std()
	if !ok || unit != 2 {
		t.Errorf("Std = %v, %v, want 2, true", unit, ok)
	}
	if _, ok := f.Core(); ok {
		t.Errorf("core is not in the scripted graph")
	}
}

func TestFamousIsDefaultLibrary(t *testing.T) {
	f := sem.Famous{Model: newUnitModel(), Perspective: 1}
	if !f.IsDefaultLibrary(2) {
		t.Errorf("std unit should be default library")
	}
	if f.IsDefaultLibrary(1) {
		t.Errorf("the local crate is not a default library")
	}
	if f.IsDefaultLibrary(sem.NoUnit) {
		t.Errorf("the invalid unit is not a default library")
	}
}

func TestFamousFindByPath(t *testing.T) {
	f := sem.Famous{Model: newUnitModel(), Perspective: 1}
	unit, rest, ok := f.FindByPath("std.ops.Fn")
	if !ok || unit != 2 || rest != "ops.Fn" {
		t.Errorf("FindByPath = %v, %q, %v", unit, rest, ok)
	}
	if _, _, ok := f.FindByPath("serde.Deserialize"); ok {
		t.Errorf("unknown unit resolved")
	}
}

func TestFamousPerspectiveShortCircuit(t *testing.T) {
	// Asking for the perspective unit's own name returns it directly.
	f := sem.Famous{Model: newUnitModel(), Perspective: 1}
	unit, _, ok := f.FindByPath("app")
	if !ok || unit != 1 {
		t.Errorf("FindByPath(app) = %v, %v, want the perspective unit", unit, ok)
	}
}

func TestFamousNilModel(t *testing.T) {
	var f sem.Famous
	if _, ok := f.Std(); ok {
		t.Errorf("nil model found std")
	}
	if f.IsDefaultLibrary(2) {
		t.Errorf("nil model classified a unit")
	}
}
