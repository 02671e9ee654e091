package wlcache

import "github.com/perceptia/wlfrontend/internal/containers"

// RelateChild appends childSid to parentSid's ordered child list if it
// is not already present, the Cache-side half of add_subsurface. Must
// be called with the lock held.
func (c *Cache) RelateChild(parentSid, childSid containers.ID) {
	list := c.childList(parentSid)
	found := false
	list.Each(func(v interface{}) {
		if v.(containers.ID) == childSid {
			found = true
		}
	})
	if !found {
		list.Append(childSid)
	}
}

// PlaceAbove moves target to the slot just past the index sibling held
// before the move (containers.List.MoveAbove), matching
// subsurface.place_above. Must be called with the lock held.
func (c *Cache) PlaceAbove(parentSid, target, sibling containers.ID) {
	c.childList(parentSid).MoveAbove(target, sibling, idEq)
}

// PlaceBelow moves target to the index sibling held before the move
// (containers.List.MoveBelow), matching subsurface.place_below.
func (c *Cache) PlaceBelow(parentSid, target, sibling containers.ID) {
	c.childList(parentSid).MoveBelow(target, sibling, idEq)
}

// Children returns a snapshot of parentSid's child order, oldest
// relation first unless reordered.
func (c *Cache) Children(parentSid containers.ID) []containers.ID {
	raw := c.childList(parentSid).Snapshot()
	out := make([]containers.ID, len(raw))
	for i, v := range raw {
		out[i] = v.(containers.ID)
	}
	return out
}

func (c *Cache) childList(parentSid containers.ID) *containers.List {
	l, ok := c.children[parentSid]
	if !ok {
		l = containers.NewList()
		c.children[parentSid] = l
	}
	return l
}

func idEq(a, b interface{}) bool {
	return a.(containers.ID) == b.(containers.ID)
}
