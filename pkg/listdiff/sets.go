package listdiff

import "sort"

// Strings returns the items of next missing from old (added) and the items
// of old missing from next (removed), each in list order.
func Strings(old, next []string) (added, removed []string) {
	inOld := make(map[string]bool, len(old))
	for _, s := range old {
		inOld[s] = true
	}
	inNext := make(map[string]bool, len(next))
	for _, s := range next {
		inNext[s] = true
	}
	for _, s := range next {
		if !inOld[s] {
			added = append(added, s)
		}
	}
	for _, s := range old {
		if !inNext[s] {
			removed = append(removed, s)
		}
	}
	return added, removed
}

// KeyDiff is the result of comparing two maps by key.
type KeyDiff struct {
	Added   []string
	Updated []string
	Removed []string
}

// Empty reports whether the maps were equivalent.
func (d KeyDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Updated) == 0 && len(d.Removed) == 0
}

// Keys compares two maps. A key present in both is updated when equal
// reports false for its values. Each result is sorted.
func Keys[V any](old, next map[string]V, equal func(a, b V) bool) KeyDiff {
	var d KeyDiff
	for k, nv := range next {
		ov, ok := old[k]
		switch {
		case !ok:
			d.Added = append(d.Added, k)
		case !equal(ov, nv):
			d.Updated = append(d.Updated, k)
		}
	}
	for k := range old {
		if _, ok := next[k]; !ok {
			d.Removed = append(d.Removed, k)
		}
	}
	sort.Strings(d.Added)
	sort.Strings(d.Updated)
	sort.Strings(d.Removed)
	return d
}
