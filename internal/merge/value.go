package merge

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Kind discriminates the three shapes a merged value can take.
type Kind int

const (
	KindScalar Kind = iota
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is one node in the merged option tree: a tagged union of mapping,
// sequence and scalar. Scalars carry a forced flag; every node records the
// fragment that last wrote it, for conflict reporting.
type Value struct {
	kind    Kind
	scalar  cty.Value
	forced  bool
	elems   []*Value
	entries map[string]*Value
	origin  string
}

func newMapping(origin string) *Value {
	return &Value{
		kind:    KindMapping,
		entries: make(map[string]*Value),
		origin:  origin,
	}
}

// fromCty builds a value tree from a cty value. Object and map values
// become mappings, list/tuple/set values become sequences, everything else
// is a scalar. The forced flag propagates to every node of the subtree, so
// a forced object assignment forces each of its leaves.
func fromCty(v cty.Value, forced bool, origin string) *Value {
	if v.IsNull() || !v.IsKnown() {
		return &Value{kind: KindScalar, scalar: v, forced: forced, origin: origin}
	}

	ty := v.Type()
	switch {
	case ty.IsObjectType() || ty.IsMapType():
		node := newMapping(origin)
		node.forced = forced
		for it := v.ElementIterator(); it.Next(); {
			k, elem := it.Element()
			node.entries[k.AsString()] = fromCty(elem, forced, origin)
		}
		return node

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		node := &Value{kind: KindSequence, forced: forced, origin: origin}
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			node.elems = append(node.elems, fromCty(elem, forced, origin))
		}
		return node

	default:
		return &Value{kind: KindScalar, scalar: v, forced: forced, origin: origin}
	}
}

// Kind reports the shape of this node.
func (v *Value) Kind() Kind { return v.kind }

// Origin returns the fragment that last wrote this node.
func (v *Value) Origin() string { return v.origin }

// Forced reports whether the node was force-marked.
func (v *Value) Forced() bool { return v.forced }

// Scalar returns the underlying cty value of a scalar node, or cty.NilVal
// for mappings and sequences.
func (v *Value) Scalar() cty.Value {
	if v.kind != KindScalar {
		return cty.NilVal
	}
	return v.scalar
}

// Len returns the element count of a sequence, or zero otherwise.
func (v *Value) Len() int { return len(v.elems) }

// Index returns the i-th element of a sequence.
func (v *Value) Index(i int) *Value { return v.elems[i] }

// Keys returns the sorted keys of a mapping.
func (v *Value) Keys() []string {
	keys := make([]string, 0, len(v.entries))
	for k := range v.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entry returns the named child of a mapping.
func (v *Value) Entry(key string) (*Value, bool) {
	child, ok := v.entries[key]
	return child, ok
}

// AsString unwraps a scalar string node.
func (v *Value) AsString() (string, bool) {
	if v.kind != KindScalar || v.scalar.IsNull() || v.scalar.Type() != cty.String {
		return "", false
	}
	return v.scalar.AsString(), true
}

// AsStringSlice unwraps a sequence of scalar strings.
func (v *Value) AsStringSlice() ([]string, bool) {
	if v.kind != KindSequence {
		return nil, false
	}
	out := make([]string, 0, len(v.elems))
	for _, elem := range v.elems {
		s, ok := elem.AsString()
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// AsStringMap unwraps a mapping whose entries are all scalar strings.
func (v *Value) AsStringMap() (map[string]string, bool) {
	if v.kind != KindMapping {
		return nil, false
	}
	out := make(map[string]string, len(v.entries))
	for key, entry := range v.entries {
		s, ok := entry.AsString()
		if !ok {
			return nil, false
		}
		out[key] = s
	}
	return out, true
}
