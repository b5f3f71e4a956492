package catalog

import "testing"

func TestLabelKnownID(t *testing.T) {
	if got := Label("slide"); got != "Toboggan" {
		t.Fatalf("Label(slide) = %q", got)
	}
}

func TestLabelUnknownIDPassesThrough(t *testing.T) {
	if got := Label("zipline"); got != "zipline" {
		t.Fatalf("Label(zipline) = %q, want verbatim id", got)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0].Label = "mutated"
	if All()[0].Label == "mutated" {
		t.Fatal("All() exposes internal slice")
	}
}

func TestByCategory(t *testing.T) {
	for _, c := range []Category{CategoryPlay, CategoryComfort, CategorySafety, CategoryAccessibility} {
		entries := ByCategory(c)
		if len(entries) == 0 {
			t.Errorf("no entries for category %s", c)
		}
		for _, e := range entries {
			if e.Category != c {
				t.Errorf("entry %s has category %s, want %s", e.ID, e.Category, c)
			}
		}
	}
}

func TestValidID(t *testing.T) {
	if !ValidID("swing") {
		t.Error("swing should be valid")
	}
	if ValidID("") || ValidID("nope") {
		t.Error("unknown ids should be invalid")
	}
}
