// Package listdiff computes edit sequences between ordered lists.
//
// Sequence produces the operations that turn one list into another in a
// single left-to-right pass, which is what the reconciler uses to patch
// children. Strings and Keys are the simpler set diffs used for class lists,
// attributes, styles and event maps.
package listdiff

// Op is the kind of a list operation.
type Op uint8

const (
	OpRemove Op = iota + 1
	OpNoop
	OpMove
	OpAdd
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpRemove:
		return "remove"
	case OpNoop:
		return "noop"
	case OpMove:
		return "move"
	case OpAdd:
		return "add"
	default:
		return "unknown"
	}
}

// Operation is one step of an edit sequence.
//
// Index is the position in the new list. For OpRemove it is the position in
// the working list at the time of removal. OriginalIndex is the item's
// position in the old list (OpNoop and OpMove, -1 otherwise). From is the
// working-list position a moved item was taken from (OpMove only).
type Operation[T any] struct {
	Op            Op
	Index         int
	Item          T
	OriginalIndex int
	From          int
}

// working is a copy of the old list that remembers each item's original
// index while it is mutated in place.
type working[T any] struct {
	items    []T
	original []int
	equal    func(a, b T) bool
}

func newWorking[T any](old []T, equal func(a, b T) bool) *working[T] {
	w := &working[T]{
		items:    make([]T, len(old)),
		original: make([]int, len(old)),
		equal:    equal,
	}
	copy(w.items, old)
	for i := range old {
		w.original[i] = i
	}
	return w
}

func (w *working[T]) len() int { return len(w.items) }

// isRemoval reports whether the item at index no longer exists in next.
func (w *working[T]) isRemoval(index int, next []T) bool {
	if index >= w.len() {
		return false
	}
	item := w.items[index]
	for _, n := range next {
		if w.equal(item, n) {
			return false
		}
	}
	return true
}

func (w *working[T]) isNoop(index int, next []T) bool {
	if index >= w.len() {
		return false
	}
	return w.equal(w.items[index], next[index])
}

// findFrom returns the first working index >= from whose item equals item.
func (w *working[T]) findFrom(item T, from int) int {
	for i := from; i < w.len(); i++ {
		if w.equal(w.items[i], item) {
			return i
		}
	}
	return -1
}

func (w *working[T]) removeAt(index int) Operation[T] {
	op := Operation[T]{
		Op:            OpRemove,
		Index:         index,
		Item:          w.items[index],
		OriginalIndex: -1,
	}
	w.items = append(w.items[:index], w.items[index+1:]...)
	w.original = append(w.original[:index], w.original[index+1:]...)
	return op
}

func (w *working[T]) noopAt(index int) Operation[T] {
	return Operation[T]{
		Op:            OpNoop,
		Index:         index,
		Item:          w.items[index],
		OriginalIndex: w.original[index],
	}
}

func (w *working[T]) addAt(item T, index int) Operation[T] {
	w.items = insert(w.items, index, item)
	w.original = insert(w.original, index, -1)
	return Operation[T]{
		Op:            OpAdd,
		Index:         index,
		Item:          item,
		OriginalIndex: -1,
	}
}

func (w *working[T]) moveTo(item T, index int) Operation[T] {
	from := w.findFrom(item, index)
	op := Operation[T]{
		Op:            OpMove,
		Index:         index,
		Item:          w.items[from],
		OriginalIndex: w.original[from],
		From:          from,
	}

	moved, orig := w.items[from], w.original[from]
	w.items = append(w.items[:from], w.items[from+1:]...)
	w.original = append(w.original[:from], w.original[from+1:]...)
	w.items = insert(w.items, index, moved)
	w.original = insert(w.original, index, orig)
	return op
}

func insert[T any](s []T, index int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[index+1:], s[index:])
	s[index] = v
	return s
}

// Sequence returns the operations that transform old into next.
//
// The walk visits each index of next once. At each index the working item
// is removed if it appears nowhere in next, kept if it equals the target,
// otherwise the target is added if no later working item matches it, or
// the first match at or after the index is moved into place. Items left
// beyond len(next) are removed at the end. Worst case is O(n²).
func Sequence[T any](old, next []T, equal func(a, b T) bool) []Operation[T] {
	w := newWorking(old, equal)
	seq := make([]Operation[T], 0, len(next))

	for index := 0; index < len(next); index++ {
		if w.isRemoval(index, next) {
			seq = append(seq, w.removeAt(index))
			index--
			continue
		}

		if w.isNoop(index, next) {
			seq = append(seq, w.noopAt(index))
			continue
		}

		item := next[index]
		if w.findFrom(item, index) == -1 {
			seq = append(seq, w.addAt(item, index))
			continue
		}

		seq = append(seq, w.moveTo(item, index))
	}

	for w.len() > len(next) {
		seq = append(seq, w.removeAt(len(next)))
	}

	return seq
}

// Apply replays ops against a copy of old. Add and noop take their item
// from the operation; move takes the item found at From.
func Apply[T any](old []T, ops []Operation[T]) []T {
	out := make([]T, len(old))
	copy(out, old)
	for _, op := range ops {
		switch op.Op {
		case OpRemove:
			out = append(out[:op.Index], out[op.Index+1:]...)
		case OpAdd:
			out = insert(out, op.Index, op.Item)
		case OpMove:
			item := out[op.From]
			out = append(out[:op.From], out[op.From+1:]...)
			out = insert(out, op.Index, item)
		}
	}
	return out
}

// Counts tallies operations by kind.
func Counts[T any](ops []Operation[T]) map[Op]int {
	counts := make(map[Op]int, 4)
	for _, op := range ops {
		counts[op.Op]++
	}
	return counts
}
