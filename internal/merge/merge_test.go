package merge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vic/van/internal/config"
	"github.com/vic/van/internal/keypath"
	"github.com/zclconf/go-cty/cty"
)

func assign(origin, path string, value cty.Value) *config.Assignment {
	return &config.Assignment{
		Path:   keypath.MustParse(path),
		Value:  value,
		Origin: origin,
	}
}

func forced(origin, path string, value cty.Value) *config.Assignment {
	a := assign(origin, path, value)
	a.Force = true
	return a
}

func fragmentWith(name string, assignments ...*config.Assignment) *config.Fragment {
	return &config.Fragment{
		Path:        "/cfg/" + name,
		Name:        name,
		Assignments: assignments,
	}
}

func mustMerge(t *testing.T, fragments ...*config.Fragment) *Result {
	t.Helper()
	result, err := Merge(fragments)
	require.NoError(t, err)
	return result
}

func TestMerge_ScalarLastWriterWins(t *testing.T) {
	// Fragments {a.b = 1} and {a.b = 2} merge, in that order, to {a.b = 2}.
	result := mustMerge(t,
		fragmentWith("one.hcl", assign("one.hcl", "a.b", cty.NumberIntVal(1))),
		fragmentWith("two.hcl", assign("two.hcl", "a.b", cty.NumberIntVal(2))),
	)

	node, ok := result.Lookup("a.b")
	require.True(t, ok)
	assert.True(t, node.Scalar().RawEquals(cty.NumberIntVal(2)))
	assert.Equal(t, "two.hcl", node.Origin())
}

func TestMerge_SequencesConcatenate(t *testing.T) {
	// {list = [1,2]} and {list = [3]} merge to {list = [1,2,3]}.
	result := mustMerge(t,
		fragmentWith("one.hcl", assign("one.hcl", "list",
			cty.TupleVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2)}))),
		fragmentWith("two.hcl", assign("two.hcl", "list",
			cty.TupleVal([]cty.Value{cty.NumberIntVal(3)}))),
	)

	node, ok := result.Lookup("list")
	require.True(t, ok)
	require.Equal(t, KindSequence, node.Kind())
	require.Equal(t, 3, node.Len())
	for i, want := range []int64{1, 2, 3} {
		assert.True(t, node.Index(i).Scalar().RawEquals(cty.NumberIntVal(want)))
	}
}

func TestMerge_MappingsUnionRecursively(t *testing.T) {
	result := mustMerge(t,
		fragmentWith("one.hcl", assign("one.hcl", "shell",
			cty.ObjectVal(map[string]cty.Value{
				"packages": cty.TupleVal([]cty.Value{cty.StringVal("cargo")}),
				"greeting": cty.StringVal("hello"),
			}))),
		fragmentWith("two.hcl", assign("two.hcl", "shell",
			cty.ObjectVal(map[string]cty.Value{
				"packages": cty.TupleVal([]cty.Value{cty.StringVal("rustfmt")}),
				"editor":   cty.StringVal("vim"),
			}))),
	)

	shell, ok := result.Lookup("shell")
	require.True(t, ok)
	assert.Equal(t, []string{"editor", "greeting", "packages"}, shell.Keys())

	packages := result.StringSlice("shell.packages")
	assert.Equal(t, []string{"cargo", "rustfmt"}, packages, "nested sequences concatenate")

	greeting, ok := result.String("shell.greeting")
	require.True(t, ok)
	assert.Equal(t, "hello", greeting)
}

func TestMerge_SingleWriterPassesThroughUnchanged(t *testing.T) {
	value := cty.ObjectVal(map[string]cty.Value{
		"nested": cty.ObjectVal(map[string]cty.Value{
			"flag": cty.True,
		}),
	})
	result := mustMerge(t,
		fragmentWith("only.hcl", assign("only.hcl", "solo", value)),
	)

	node, ok := result.Lookup("solo.nested.flag")
	require.True(t, ok)
	assert.True(t, node.Scalar().RawEquals(cty.True))
}

func TestMerge_ForcedWinsRegardlessOfOrder(t *testing.T) {
	t.Run("forced first", func(t *testing.T) {
		result := mustMerge(t,
			fragmentWith("one.hcl", forced("one.hcl", "a.b", cty.StringVal("kept"))),
			fragmentWith("two.hcl", assign("two.hcl", "a.b", cty.StringVal("ignored"))),
		)
		got, ok := result.String("a.b")
		require.True(t, ok)
		assert.Equal(t, "kept", got)
	})

	t.Run("forced second", func(t *testing.T) {
		result := mustMerge(t,
			fragmentWith("one.hcl", assign("one.hcl", "a.b", cty.StringVal("ignored"))),
			fragmentWith("two.hcl", forced("two.hcl", "a.b", cty.StringVal("kept"))),
		)
		got, ok := result.String("a.b")
		require.True(t, ok)
		assert.Equal(t, "kept", got)
	})
}

func TestMerge_TwoDistinctForcedValuesConflict(t *testing.T) {
	_, err := Merge([]*config.Fragment{
		fragmentWith("one.hcl", forced("one.hcl", "a.b", cty.StringVal("x"))),
		fragmentWith("two.hcl", forced("two.hcl", "a.b", cty.StringVal("y"))),
	})
	require.Error(t, err)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "a.b", conflict.Path.String())
	assert.Equal(t, "one.hcl", conflict.FirstOrigin)
	assert.Equal(t, "two.hcl", conflict.SecondOrigin)
	assert.Contains(t, conflict.Error(), "one.hcl")
	assert.Contains(t, conflict.Error(), "two.hcl")
}

func TestMerge_EqualForcedValuesDoNotConflict(t *testing.T) {
	result := mustMerge(t,
		fragmentWith("one.hcl", forced("one.hcl", "a.b", cty.StringVal("same"))),
		fragmentWith("two.hcl", forced("two.hcl", "a.b", cty.StringVal("same"))),
	)
	got, ok := result.String("a.b")
	require.True(t, ok)
	assert.Equal(t, "same", got)
}

func TestMerge_ScalarMergeIsAssociative(t *testing.T) {
	// Merging (A,B) then C must equal merging (A,B,C) for scalars.
	a := fragmentWith("a.hcl", assign("a.hcl", "x", cty.NumberIntVal(1)))
	b := fragmentWith("b.hcl", assign("b.hcl", "x", cty.NumberIntVal(2)))
	c := fragmentWith("c.hcl", assign("c.hcl", "x", cty.NumberIntVal(3)))

	all := mustMerge(t, a, b, c)

	ab := mustMerge(t, a, b)
	abNode, ok := ab.Lookup("x")
	require.True(t, ok)
	rewrapped := fragmentWith("ab.hcl", &config.Assignment{
		Path:   keypath.MustParse("x"),
		Value:  abNode.Scalar(),
		Origin: abNode.Origin(),
	})
	stepwise := mustMerge(t, rewrapped, c)

	allNode, _ := all.Lookup("x")
	stepNode, _ := stepwise.Lookup("x")
	assert.True(t, allNode.Scalar().RawEquals(stepNode.Scalar()))
}

func TestMerge_MappingUnionIsIdempotent(t *testing.T) {
	value := cty.ObjectVal(map[string]cty.Value{
		"left":  cty.StringVal("l"),
		"right": cty.StringVal("r"),
	})

	once := mustMerge(t,
		fragmentWith("a.hcl", assign("a.hcl", "m", value)),
	)
	twice := mustMerge(t,
		fragmentWith("a.hcl", assign("a.hcl", "m", value)),
		fragmentWith("a.hcl", assign("a.hcl", "m", value)),
	)

	onceNode, _ := once.Lookup("m")
	twiceNode, _ := twice.Lookup("m")
	assert.Equal(t, onceNode.Keys(), twiceNode.Keys())
	for _, key := range onceNode.Keys() {
		left, _ := onceNode.Entry(key)
		right, _ := twiceNode.Entry(key)
		assert.True(t, left.Scalar().RawEquals(right.Scalar()))
	}
}

func TestMerge_KindMismatchLastWriterWins(t *testing.T) {
	result := mustMerge(t,
		fragmentWith("one.hcl", assign("one.hcl", "v", cty.StringVal("scalar"))),
		fragmentWith("two.hcl", assign("two.hcl", "v",
			cty.ObjectVal(map[string]cty.Value{"k": cty.True}))),
	)

	node, ok := result.Lookup("v")
	require.True(t, ok)
	assert.Equal(t, KindMapping, node.Kind())
}

func TestMerge_Dependencies(t *testing.T) {
	t.Run("later pin wins, follows union", func(t *testing.T) {
		result := mustMerge(t,
			&config.Fragment{Name: "one.hcl", Path: "/cfg/one.hcl", Dependencies: []*config.Dependency{{
				Name:    "nixpkgs",
				Source:  "github:nixos/nixpkgs/old",
				Follows: map[string]string{"lib": "lib"},
				Origin:  "one.hcl",
			}}},
			&config.Fragment{Name: "two.hcl", Path: "/cfg/two.hcl", Dependencies: []*config.Dependency{{
				Name:   "nixpkgs",
				Source: "github:nixos/nixpkgs/new",
				Origin: "two.hcl",
			}}},
		)

		dep := result.Dependencies["nixpkgs"]
		require.NotNil(t, dep)
		assert.Equal(t, "github:nixos/nixpkgs/new", dep.Source)
		assert.Equal(t, map[string]string{"lib": "lib"}, dep.Follows)
		assert.Equal(t, "two.hcl", dep.Origin)
	})

	t.Run("source fragments stay untouched", func(t *testing.T) {
		declared := &config.Dependency{Name: "x", Source: "s", Origin: "one.hcl"}
		_ = mustMerge(t,
			&config.Fragment{Name: "one.hcl", Path: "/cfg/one.hcl", Dependencies: []*config.Dependency{declared}},
			&config.Fragment{Name: "two.hcl", Path: "/cfg/two.hcl", Dependencies: []*config.Dependency{{
				Name: "x", Source: "s2", Origin: "two.hcl",
				Follows: map[string]string{"a": "b"},
			}}},
		)
		assert.Nil(t, declared.Follows, "fragment dependency must not be mutated")
	})
}

func TestResult_LookupMisses(t *testing.T) {
	result := mustMerge(t,
		fragmentWith("one.hcl", assign("one.hcl", "a.b", cty.StringVal("v"))),
	)

	_, ok := result.Lookup("a.b.c")
	assert.False(t, ok, "descending through a scalar misses")

	_, ok = result.Lookup("absent")
	assert.False(t, ok)

	_, ok = result.Lookup("")
	assert.False(t, ok)
}
