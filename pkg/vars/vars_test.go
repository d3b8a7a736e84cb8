package vars

import (
	"testing"
)

func TestSerializeScalars(t *testing.T) {
	cases := []struct {
		name      string
		value     any
		wantType  string
		wantValue string
	}{
		{"int", 11, TypeFloat, "11"},
		{"negative int", -7, TypeFloat, "-7"},
		{"uint", uint(3), TypeFloat, "3"},
		{"float", 1.5, TypeFloat, "1.5"},
		{"whole float", 22.0, TypeFloat, "22"},
		{"true", true, TypeString, "true"},
		{"false", false, TypeString, "false"},
		{"string", "hello", TypeString, "hello"},
		{"nil", nil, TypeString, "<nil>"},
	}

	for _, tc := range cases {
		c := &Counter{}
		e := Serialize("x", tc.value, c, 0, DefaultMaxDepth)
		if e.Type != tc.wantType {
			t.Fatalf("%s: expected type %q, got %q", tc.name, tc.wantType, e.Type)
		}
		if e.Value != tc.wantValue {
			t.Fatalf("%s: expected value %q, got %v", tc.name, tc.wantValue, e.Value)
		}
		if e.Reference != 0 {
			t.Fatalf("%s: scalar entry must carry reference 0, got %d", tc.name, e.Reference)
		}
	}
}

func TestSerializePointer(t *testing.T) {
	n := 42
	e := Serialize("p", &n, &Counter{}, 0, DefaultMaxDepth)
	if e.Type != TypeFloat || e.Value != "42" {
		t.Fatalf("expected dereferenced float 42, got %+v", e)
	}
}

func TestSerializeSlice(t *testing.T) {
	c := &Counter{}
	e := Serialize("s", []any{1, "x"}, c, 0, DefaultMaxDepth)

	if e.Type != TypeArray {
		t.Fatalf("expected type array, got %q", e.Type)
	}
	if e.Reference != 1 {
		t.Fatalf("expected first composite reference 1, got %d", e.Reference)
	}

	children, ok := e.Value.([]Entry)
	if !ok {
		t.Fatalf("expected []Entry children, got %T", e.Value)
	}
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if children[0].Name != "[0]" || children[0].Value != "1" {
		t.Fatalf("unexpected first child %+v", children[0])
	}
	if children[1].Name != "[1]" || children[1].Value != "x" {
		t.Fatalf("unexpected second child %+v", children[1])
	}
}

func TestSerializeMapOrdering(t *testing.T) {
	m := map[string]any{"b": 1, "C": 2, "a": 3, "A": 4}
	e := Serialize("m", m, &Counter{}, 0, DefaultMaxDepth)

	children := e.Value.([]Entry)
	got := make([]string, len(children))
	for i, ch := range children {
		got[i] = ch.Name
	}
	want := []string{"[A]", "[a]", "[b]", "[C]"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected property order %v, got %v", want, got)
		}
	}
	if e.ObjectName == "" {
		t.Fatalf("map entry must carry an object name")
	}
}

func TestSerializeStruct(t *testing.T) {
	type payload struct {
		Beta  int
		alpha int // unexported, must be skipped
		Alpha string
	}
	e := Serialize("p", payload{Beta: 2, alpha: 1, Alpha: "a"}, &Counter{}, 0, DefaultMaxDepth)

	if e.Type != TypeArray {
		t.Fatalf("expected composite type for struct, got %q", e.Type)
	}
	children := e.Value.([]Entry)
	if len(children) != 2 {
		t.Fatalf("expected exported fields only, got %d children", len(children))
	}
	if children[0].Name != "[Alpha]" || children[1].Name != "[Beta]" {
		t.Fatalf("unexpected field order: %q, %q", children[0].Name, children[1].Name)
	}
}

func TestSerializeDepthSentinel(t *testing.T) {
	v := map[string]any{"y": map[string]any{"z": 1}}
	x := Serialize("x", v, &Counter{}, 0, 2)

	if x.Reference != 1 {
		t.Fatalf("expected x reference 1, got %d", x.Reference)
	}
	y := x.Value.([]Entry)[0]
	if y.Name != "[y]" || y.Reference != 2 {
		t.Fatalf("expected y reference 2, got %+v", y)
	}
	z := y.Value.([]Entry)[0]
	if z.Value != TooDeep || z.Type != TypeString || z.Reference != 0 {
		t.Fatalf("expected depth sentinel for z, got %+v", z)
	}
}

func TestSerializeSentinelRegardlessOfShape(t *testing.T) {
	for _, v := range []any{1, "s", []int{1}, map[string]int{"a": 1}, struct{ A int }{1}} {
		e := Serialize("v", v, &Counter{}, 3, 3)
		if e.Value != TooDeep || e.Type != TypeString || e.Reference != 0 {
			t.Fatalf("expected sentinel at ceiling for %T, got %+v", v, e)
		}
	}
}

func TestSerializeCyclicTerminates(t *testing.T) {
	m := map[string]any{}
	m["self"] = m

	e := Serialize("m", m, &Counter{}, 0, 5)

	// Walk to the bottom: every level is the same map until the ceiling.
	depth := 0
	for {
		children, ok := e.Value.([]Entry)
		if !ok {
			break
		}
		e = children[0]
		depth++
	}
	if e.Value != TooDeep {
		t.Fatalf("expected sentinel at the bottom of the cycle, got %+v", e)
	}
	if depth != 5 {
		t.Fatalf("expected traversal to stop at depth 5, got %d", depth)
	}
}

func TestReferencesStrictlyIncreasing(t *testing.T) {
	v := map[string]any{
		"list":   []any{[]any{1}, 2},
		"nested": map[string]any{"inner": []int{1, 2}},
		"scalar": "s",
	}
	root := Serialize("root", v, &Counter{}, 0, DefaultMaxDepth)

	var refs []int
	var walk func(Entry)
	walk = func(e Entry) {
		if children, ok := e.Value.([]Entry); ok {
			if e.Reference == 0 {
				t.Fatalf("composite entry %q has reference 0", e.Name)
			}
			refs = append(refs, e.Reference)
			for _, ch := range children {
				walk(ch)
			}
			return
		}
		if e.Reference != 0 {
			t.Fatalf("scalar entry %q has reference %d", e.Name, e.Reference)
		}
	}
	walk(root)

	seen := map[int]bool{}
	for _, r := range refs {
		if seen[r] {
			t.Fatalf("duplicate reference %d", r)
		}
		seen[r] = true
	}
	for i := 1; i < len(refs); i++ {
		if refs[i] <= refs[i-1] {
			t.Fatalf("references not increasing in walk order: %v", refs)
		}
	}
}

func TestSerializeFunc(t *testing.T) {
	e := Serialize("f", TestSerializeFunc, &Counter{}, 0, DefaultMaxDepth)
	if e.Type != TypeString {
		t.Fatalf("expected string type for func, got %q", e.Type)
	}
	if e.FunctionName == "" {
		t.Fatalf("expected function name to be resolved")
	}
}

func TestSortNames(t *testing.T) {
	names := []string{"b", "A", "a", "C", "aa"}
	SortNames(names)
	want := []string{"A", "a", "aa", "b", "C"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}
