package canvas

import (
	"reflect"
	"testing"
)

func TestSelectReplaceAndAdd(t *testing.T) {
	s := NewSelection()

	s.Select([]string{"a", "b"}, false)
	if s.Len() != 2 || !s.Contains("a") || !s.Contains("b") {
		t.Fatalf("expected {a,b}, got %v", s.IDs())
	}

	s.Select([]string{"c"}, false)
	if s.Len() != 1 || !s.Contains("c") {
		t.Errorf("replace should drop previous ids, got %v", s.IDs())
	}

	s.Select([]string{"a"}, true)
	if s.Len() != 2 || !s.Contains("a") || !s.Contains("c") {
		t.Errorf("additive select should union, got %v", s.IDs())
	}
}

func TestSelectCollapsesDuplicates(t *testing.T) {
	s := NewSelection()
	s.Select([]string{"a", "a", "a"}, false)
	if s.Len() != 1 {
		t.Errorf("duplicates should collapse, got %v", s.IDs())
	}
	s.Select([]string{"a"}, true)
	if s.Len() != 1 {
		t.Errorf("re-adding a selected id should not grow the set, got %v", s.IDs())
	}
}

func TestSelectIgnoresEmptyIDs(t *testing.T) {
	s := NewSelection()
	s.Select([]string{"", "x", ""}, false)
	if s.Len() != 1 || !s.Contains("x") {
		t.Errorf("empty ids should be skipped, got %v", s.IDs())
	}
}

func TestDeselectAll(t *testing.T) {
	s := NewSelection()
	s.Select([]string{"a", "b"}, false)
	s.DeselectAll()
	if s.Len() != 0 {
		t.Errorf("expected empty selection, got %v", s.IDs())
	}
}

func TestIDsSorted(t *testing.T) {
	s := NewSelection()
	s.Select([]string{"z", "a", "m"}, false)
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"a", "m", "z"}) {
		t.Errorf("IDs should be sorted, got %v", got)
	}
}

func TestRestore(t *testing.T) {
	s := NewSelection()
	s.Select([]string{"a"}, false)
	s.Restore([]string{"x", "y"})
	if !reflect.DeepEqual(s.IDs(), []string{"x", "y"}) {
		t.Errorf("restore should replace selection, got %v", s.IDs())
	}
}
