// Package node implements the per-rule AST and CST containers described
// in spec.md §3/§4.2: an insertion-ordered name-to-value(s) mapping with
// an "add" discipline that auto-promotes a second write to a list.
package node

// Missing is the sentinel value returned by AST.Get for an absent key.
type Missing struct{}

// IsMissing reports whether v is the absent-key sentinel.
func IsMissing(v any) bool {
	_, ok := v.(Missing)
	return ok
}

// AST is an insertion-ordered mapping from string keys to a value or a
// list of values (spec.md §3). Keys keep first-seen order so rendering
// (e.g. JSON) is stable and deterministic.
type AST struct {
	order []string
	data  map[string]any
}

// NewAST returns an empty AST.
func NewAST() *AST {
	return &AST{data: make(map[string]any)}
}

// Add applies the add(k, v, force_list) discipline from spec.md §3:
//   - k absent: store v, or [v] if forceList.
//   - k present, list: append v.
//   - k present, scalar: promote to [old, v].
func (a *AST) Add(key string, v any, forceList bool) {
	old, ok := a.data[key]
	if !ok {
		a.order = append(a.order, key)
		if forceList {
			a.data[key] = []any{v}
		} else {
			a.data[key] = v
		}
		return
	}
	switch list := old.(type) {
	case []any:
		a.data[key] = append(list, v)
	default:
		a.data[key] = []any{old, v}
	}
}

// Get returns the value stored at key, or Missing{} if absent.
func (a *AST) Get(key string) any {
	if v, ok := a.data[key]; ok {
		return v
	}
	return Missing{}
}

// Has reports whether key has been written to this AST.
func (a *AST) Has(key string) bool {
	_, ok := a.data[key]
	return ok
}

// Empty reports whether no keys have been written.
func (a *AST) Empty() bool {
	return len(a.order) == 0
}

// Keys returns the keys in insertion order.
func (a *AST) Keys() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Update merges other into a using the per-key rule from spec.md §4.2:
// absent in self -> copy; self list + other list -> extend; other list,
// self scalar -> prepend self's scalar; otherwise apply Add.
func (a *AST) Update(other *AST) {
	if other == nil {
		return
	}
	for _, k := range other.order {
		ov := other.data[k]
		if !a.Has(k) {
			a.order = append(a.order, k)
			a.data[k] = ov
			continue
		}
		sv := a.data[k]
		svList, svIsList := sv.([]any)
		ovList, ovIsList := ov.([]any)
		switch {
		case svIsList && ovIsList:
			a.data[k] = append(append([]any{}, svList...), ovList...)
		case ovIsList:
			merged := make([]any, 0, len(ovList)+1)
			merged = append(merged, sv)
			merged = append(merged, ovList...)
			a.data[k] = merged
		default:
			a.Add(k, ov, false)
		}
	}
}

// Map returns a plain map[string]any snapshot, suitable for JSON
// rendering (spec.md §6, "prints the resulting AST as JSON").
func (a *AST) Map() map[string]any {
	out := make(map[string]any, len(a.order))
	for _, k := range a.order {
		out[k] = a.data[k]
	}
	return out
}
