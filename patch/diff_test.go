package patch

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

func TestDiff_Equal(t *testing.T) {
	tests := []string{
		`null`, `1`, `"s"`, `true`, `{}`, `[]`,
		`{"a":[1,{"b":null}],"c":"d"}`,
	}
	for _, s := range tests {
		if p := Diff(tree(t, s), tree(t, s)); p != nil {
			t.Errorf("Diff(%s, %s) = %v, want nil", s, s, p)
		}
	}
}

func TestDiff_Records(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want Patch
	}{
		{
			"ChangeScalar",
			`{"count":0}`, `{"count":1}`,
			Patch{{Path: Path{K("count")}, Type: Change, Value: json.Number("1"), OldValue: json.Number("0")}},
		},
		{
			"CreateKey",
			`{}`, `{"a":"x"}`,
			Patch{{Path: Path{K("a")}, Type: Create, Value: "x"}},
		},
		{
			"RemoveKey",
			`{"a":"x"}`, `{}`,
			Patch{{Path: Path{K("a")}, Type: Remove, OldValue: "x"}},
		},
		{
			"KindMismatch",
			`{"a":{"b":1}}`, `{"a":[1]}`,
			Patch{{Path: Path{K("a")}, Type: Change, Value: []any{json.Number("1")}, OldValue: map[string]any{"b": json.Number("1")}}},
		},
		{
			"RootKind",
			`{"a":1}`, `"text"`,
			Patch{{Path: nil, Type: Change, Value: "text", OldValue: map[string]any{"a": json.Number("1")}}},
		},
		{
			"ArrayShrinkDescending",
			`[1,2,3]`, `[1]`,
			Patch{
				{Path: Path{I(2)}, Type: Remove, OldValue: json.Number("3")},
				{Path: Path{I(1)}, Type: Remove, OldValue: json.Number("2")},
			},
		},
		{
			"ArrayGrowAscending",
			`[1]`, `[1,2,3]`,
			Patch{
				{Path: Path{I(1)}, Type: Create, Value: json.Number("2")},
				{Path: Path{I(2)}, Type: Create, Value: json.Number("3")},
			},
		},
		{
			"NestedElement",
			`{"elements":[{"id":"a","content":"x"}]}`, `{"elements":[{"id":"a","content":"y"}]}`,
			Patch{{Path: Path{K("elements"), I(0), K("content")}, Type: Change, Value: "y", OldValue: "x"}},
		},
		{
			"SortedKeys",
			`{"b":1,"a":1}`, `{"d":1,"c":1}`,
			Patch{
				{Path: Path{K("a")}, Type: Remove, OldValue: json.Number("1")},
				{Path: Path{K("b")}, Type: Remove, OldValue: json.Number("1")},
				{Path: Path{K("c")}, Type: Create, Value: json.Number("1")},
				{Path: Path{K("d")}, Type: Create, Value: json.Number("1")},
			},
		},
		{
			"NullToValue",
			`{"a":null}`, `{"a":0}`,
			Patch{{Path: Path{K("a")}, Type: Change, Value: json.Number("0"), OldValue: nil}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tree(t, tt.a), tree(t, tt.b))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Diff =\n%v\nwant\n%v", got, tt.want)
			}
		})
	}
}

func TestDiff_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"Counter", `{"count":0}`, `{"count":2}`},
		{"Reorder", `{"l":["a","b","c"]}`, `{"l":["c","a","b"]}`},
		{"InsertMiddle", `{"l":[1,2,3]}`, `{"l":[1,9,2,3]}`},
		{"RemoveMiddle", `{"l":[1,2,3,4,5]}`, `{"l":[1,4]}`},
		{"EmptyArrays", `{"l":[]}`, `{"l":[[],[]]}`},
		{"NestedArrays", `[[1,2],[3]]`, `[[1],[3,4,5],[]]`},
		{"ObjectToArray", `{"a":{"x":1}}`, `{"a":["x"]}`},
		{"RootToNull", `{"a":1}`, `null`},
		{"NullToRoot", `null`, `{"a":1}`},
		{"NumericKeys", `{"0":"a","1":"b"}`, `{"1":"c","2":"d"}`},
		{
			"Readme",
			`{"elements":[{"id":"h","type":"header","content":"Old"},{"id":"p","type":"text","content":"Body"}],"variables":{"name":"kit"}}`,
			`{"elements":[{"id":"p","type":"text","content":"Body!"}],"variables":{"name":"kit","license":"MIT"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := tree(t, tt.a), tree(t, tt.b)
			assertRoundTrip(t, a, b)
			assertRoundTrip(t, b, a)
		})
	}
}

func assertRoundTrip(t *testing.T, a, b any) {
	t.Helper()
	got, err := Apply(a, Diff(a, b))
	if err != nil {
		t.Fatalf("Apply(a, Diff(a, b)) failed: %v", err)
	}
	if !reflect.DeepEqual(got, b) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", got, b)
	}
}

// randomTree builds a small JSON tree biased towards the shapes a README
// document has: objects of arrays of objects.
func randomTree(r *rand.Rand, depth int) any {
	if depth <= 0 {
		return randomLeaf(r)
	}
	switch r.Intn(4) {
	case 0:
		return randomLeaf(r)
	case 1:
		n := r.Intn(5)
		arr := make([]any, n)
		for i := range arr {
			arr[i] = randomTree(r, depth-1)
		}
		return arr
	default:
		n := r.Intn(5)
		obj := make(map[string]any, n)
		for i := 0; i < n; i++ {
			obj[fmt.Sprintf("k%d", r.Intn(6))] = randomTree(r, depth-1)
		}
		return obj
	}
}

func randomLeaf(r *rand.Rand) any {
	switch r.Intn(4) {
	case 0:
		return nil
	case 1:
		return r.Intn(2) == 0
	case 2:
		return json.Number(fmt.Sprint(r.Intn(10)))
	default:
		return fmt.Sprintf("s%d", r.Intn(10))
	}
}

func TestDiff_RoundTripRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		a := randomTree(r, 4)
		b := randomTree(r, 4)
		assertRoundTrip(t, a, b)
		if t.Failed() {
			t.Fatalf("failed on iteration %d", i)
		}
	}
}

func TestDiff_PatchSurvivesJSON(t *testing.T) {
	a := tree(t, `{"elements":[{"level":1},{"level":2}],"n":12345678901234567890}`)
	b := tree(t, `{"elements":[{"level":3}],"n":1}`)

	data, err := json.Marshal(Diff(a, b))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var p Patch
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	got, err := Apply(a, p)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !reflect.DeepEqual(got, b) {
		t.Errorf("Apply after JSON = %#v, want %#v", got, b)
	}
}

func BenchmarkDiff_Elements(b *testing.B) {
	sizes := []int{10, 100, 1000}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("Size%d", size), func(b *testing.B) {
			s1 := make([]any, size)
			for i := range s1 {
				s1[i] = map[string]any{"id": fmt.Sprint(i), "content": "text"}
			}
			s2 := make([]any, size)
			copy(s2, s1)
			s2[size/2] = map[string]any{"id": "changed", "content": "text"} // One change in the middle

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Diff(s1, s2)
			}
		})
	}
}

func BenchmarkApply_Elements(b *testing.B) {
	s1 := make([]any, 100)
	for i := range s1 {
		s1[i] = map[string]any{"id": fmt.Sprint(i), "content": "text"}
	}
	s2 := append(append([]any{}, s1[1:]...), map[string]any{"id": "new"})
	p := Diff(s1, s2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Apply(s1, p)
	}
}
