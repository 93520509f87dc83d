package listdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestStrings(t *testing.T) {
	tests := []struct {
		name        string
		old, next   []string
		wantAdded   []string
		wantRemoved []string
	}{
		{"both empty", nil, nil, nil, nil},
		{"same", []string{"a", "b"}, []string{"b", "a"}, nil, nil},
		{"added", []string{"a"}, []string{"a", "b", "c"}, []string{"b", "c"}, nil},
		{"removed", []string{"a", "b"}, []string{"b"}, nil, []string{"a"}},
		{"both", []string{"a", "b"}, []string{"b", "c"}, []string{"c"}, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, removed := Strings(tt.old, tt.next)
			if diff := cmp.Diff(tt.wantAdded, added, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("added mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantRemoved, removed, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("removed mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKeys(t *testing.T) {
	old := map[string]any{"id": "a", "title": "t", "n": 1}
	next := map[string]any{"id": "a", "n": 2, "role": "button", "alt": "x"}

	d := Keys(old, next, func(a, b any) bool { return a == b })
	want := KeyDiff{
		Added:   []string{"alt", "role"},
		Updated: []string{"n"},
		Removed: []string{"title"},
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if d.Empty() {
		t.Error("Empty() = true, want false")
	}

	if !Keys(old, old, func(a, b any) bool { return a == b }).Empty() {
		t.Error("Keys(old, old) not empty")
	}
}
