package statemod

import "testing"

func TestPathNamespace(t *testing.T) {
	cases := []struct {
		name string
		path Path
		want string
	}{
		{"root", Path{}, ""},
		{"nil root", nil, ""},
		{"single", Path{"cart"}, "cart/"},
		{"nested", Path{"cart", "items"}, "cart/items/"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.path.Namespace(); got != tc.want {
				t.Fatalf("expected namespace %q, got %q", tc.want, got)
			}
		})
	}
}

func TestPathQualified(t *testing.T) {
	if got := (Path{}).Qualified("increment"); got != "increment" {
		t.Fatalf("expected root qualification to be a no-op, got %q", got)
	}
	if got := (Path{"cart", "items"}).Qualified("add"); got != "cart/items/add" {
		t.Fatalf("expected qualified name cart/items/add, got %q", got)
	}
}

func TestPathChildDoesNotAliasSiblings(t *testing.T) {
	parent := make(Path, 1, 4)
	parent[0] = "root"

	first := parent.Child("a")
	second := parent.Child("b")

	if first[1] != "a" {
		t.Fatalf("expected first child segment a, got %q", first[1])
	}
	if second[1] != "b" {
		t.Fatalf("expected second child segment b, got %q", second[1])
	}
}

func TestPathString(t *testing.T) {
	if got := (Path{}).String(); got != "<root>" {
		t.Fatalf("expected <root>, got %q", got)
	}
	if got := (Path{"a", "b"}).String(); got != "a/b" {
		t.Fatalf("expected a/b, got %q", got)
	}
}

func TestPathCloneDetaches(t *testing.T) {
	original := Path{"a", "b"}
	copied := original.clone()
	copied[0] = "changed"

	if original[0] != "a" {
		t.Fatalf("expected clone to detach from original, got %q", original[0])
	}
	if (Path{}).clone() != nil {
		t.Fatal("expected empty path clone to be nil")
	}
}
