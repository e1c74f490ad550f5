package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	n := Params{Page: -3, Size: 0}.Normalize()
	if n.Page != 0 {
		t.Fatalf("expected page 0, got %d", n.Page)
	}
	if n.Size != DefaultSize {
		t.Fatalf("expected default size %d, got %d", DefaultSize, n.Size)
	}
}

func TestNormalizeCapsSize(t *testing.T) {
	n := Params{Page: 1, Size: 5000}.Normalize()
	if n.Size != MaxSize {
		t.Fatalf("expected size capped at %d, got %d", MaxSize, n.Size)
	}
}

func TestOffset(t *testing.T) {
	if got := (Params{Page: 3, Size: 25}).Offset(); got != 75 {
		t.Fatalf("expected offset 75, got %d", got)
	}
	if got := (Params{Page: 0, Size: 25}).Offset(); got != 0 {
		t.Fatalf("expected offset 0, got %d", got)
	}
}

func TestMetaFor(t *testing.T) {
	meta := MetaFor(Params{Page: 2, Size: 10}, 25)

	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", meta.TotalPages)
	}
	if meta.TotalElements != 25 {
		t.Fatalf("expected 25 total elements, got %d", meta.TotalElements)
	}
	if meta.First {
		t.Fatal("page 2 should not be first")
	}
	if !meta.Last {
		t.Fatal("page 2 of 3 should be last")
	}
}

func TestMetaForEmptyResult(t *testing.T) {
	meta := MetaFor(Params{Page: 0, Size: 10}, 0)

	if meta.TotalPages != 0 {
		t.Fatalf("expected 0 pages for empty set, got %d", meta.TotalPages)
	}
	if !meta.First || !meta.Last {
		t.Fatal("empty set should be both first and last page")
	}
}
