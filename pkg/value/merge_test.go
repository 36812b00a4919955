package value

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		to   map[string]any
		from map[string]any
		want map[string]any
	}{
		{
			name: "recurses into mappings",
			to:   map[string]any{"a": map[string]any{"x": 1}},
			from: map[string]any{"a": map[string]any{"y": 2}},
			want: map[string]any{"a": map[string]any{"x": 1, "y": 2}},
		},
		{
			name: "sequences replace",
			to:   map[string]any{"a": []any{1, 2, 3}},
			from: map[string]any{"a": []any{9}},
			want: map[string]any{"a": []any{9}},
		},
		{
			name: "scalars overwrite",
			to:   map[string]any{"a": 1, "b": 2},
			from: map[string]any{"a": "one"},
			want: map[string]any{"a": "one", "b": 2},
		},
		{
			name: "mapping replaces scalar",
			to:   map[string]any{"a": 1},
			from: map[string]any{"a": map[string]any{"b": 2}},
			want: map[string]any{"a": map[string]any{"b": 2}},
		},
		{
			name: "nil destination",
			to:   nil,
			from: map[string]any{"a": 1},
			want: map[string]any{"a": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.to, tt.from, MergeOptions{})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Merge mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMerge_MutatesDestination(t *testing.T) {
	to := map[string]any{"a": map[string]any{"x": 1}}
	Merge(to, map[string]any{"a": map[string]any{"y": 2}}, MergeOptions{})
	if got := Get(to, "a.y", nil); got != 2 {
		t.Errorf("destination not updated in place: a.y = %v", got)
	}
}

func TestMerge_Clone(t *testing.T) {
	to := map[string]any{"a": map[string]any{"x": 1}}
	got := Merge(to, map[string]any{"a": map[string]any{"y": 2}}, MergeOptions{Clone: true})

	if Get(to, "a.y", nil) != nil {
		t.Error("Clone option should leave the destination untouched")
	}
	want := map[string]any{"a": map[string]any{"x": 1, "y": 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_Shallow(t *testing.T) {
	nested := map[string]any{"y": 2}
	to := map[string]any{"a": map[string]any{"x": 1}}
	got := Merge(to, map[string]any{"a": nested}, MergeOptions{Shallow: true})

	nested["z"] = 3
	if Get(got, "a.z", nil) != 3 {
		t.Error("Shallow merge should assign nested values by reference")
	}
	if Get(got, "a.x", nil) != nil {
		t.Error("Shallow merge should not recurse")
	}
}

func TestMerge_SequenceIsCopied(t *testing.T) {
	seq := []any{1, 2}
	got := Merge(nil, map[string]any{"s": seq}, MergeOptions{})
	seq[0] = 99
	if got["s"].([]any)[0] != 1 {
		t.Error("merged sequence shares storage with the source")
	}
}

func TestClone_Deep(t *testing.T) {
	orig := map[string]any{
		"m":    map[string]any{"k": "v"},
		"rows": []any{map[string]any{"id": 1}},
	}
	c := Clone(orig, false)

	if diff := cmp.Diff(orig, c); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	c["m"].(map[string]any)["k"] = "changed"
	c["rows"].([]any)[0].(map[string]any)["id"] = 2

	if Get(orig, "m.k", nil) != "v" {
		t.Error("deep clone shares a nested mapping")
	}
	if Get(orig, "rows.0.id", nil) != 1 {
		t.Error("deep clone shares a mapping inside a sequence")
	}
}

func TestClone_Shallow(t *testing.T) {
	orig := map[string]any{"m": map[string]any{"k": "v"}}
	c := Clone(orig, true)

	c["new"] = true
	if _, ok := orig["new"]; ok {
		t.Error("shallow clone shares the top-level map")
	}
	c["m"].(map[string]any)["k"] = "changed"
	if Get(orig, "m.k", nil) != "changed" {
		t.Error("shallow clone should share nested mappings")
	}
}

func TestEach(t *testing.T) {
	t.Run("sequence", func(t *testing.T) {
		var keys []any
		var vals []any
		Each([]string{"a", "b"}, func(v, k, _ any) {
			keys = append(keys, k)
			vals = append(vals, v)
		})
		if diff := cmp.Diff([]any{0, 1}, keys); diff != "" {
			t.Errorf("keys (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]any{"a", "b"}, vals); diff != "" {
			t.Errorf("values (-want +got):\n%s", diff)
		}
	})

	t.Run("mapping sorted", func(t *testing.T) {
		var keys []any
		Each(map[string]any{"b": 2, "a": 1, "c": 3}, func(_, k, _ any) {
			keys = append(keys, k)
		})
		if diff := cmp.Diff([]any{"a", "b", "c"}, keys); diff != "" {
			t.Errorf("keys (-want +got):\n%s", diff)
		}
	})

	t.Run("typed mapping", func(t *testing.T) {
		var vals []any
		Each(map[string]int{"y": 2, "x": 1}, func(v, _, _ any) {
			vals = append(vals, v)
		})
		if diff := cmp.Diff([]any{1, 2}, vals); diff != "" {
			t.Errorf("values (-want +got):\n%s", diff)
		}
	})

	t.Run("scalar and nil fn", func(t *testing.T) {
		called := false
		Each(42, func(_, _, _ any) { called = true })
		Each([]any{1}, nil)
		if called {
			t.Error("Each should ignore scalars")
		}
	})
}

func TestCapitalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"transform", "Transform"},
		{"T", "T"},
		{"", ""},
		{"écran", "Écran"},
	}
	for _, tt := range tests {
		if got := Capitalize(tt.in); got != tt.want {
			t.Errorf("Capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTrim(t *testing.T) {
	if got := Trim("  \t hi there \n"); got != "hi there" {
		t.Errorf("Trim = %q", got)
	}
}
