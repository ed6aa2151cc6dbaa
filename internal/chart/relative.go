package chart

// RelativeIndex is a tile index expressed against an anchor: the first tile,
// the owning tile, or the last tile.
type RelativeIndex struct {
	Index  int
	Anchor RelativeToTile
}

// Resolve turns r into an absolute tile index for an event on tile base in a
// chart of count tiles. The result is clamped to [0, count-1].
func (r RelativeIndex) Resolve(base, count int) int {
	last := count - 1
	if last < 0 {
		return 0
	}
	switch r.Anchor {
	case Start:
		if r.Index > 0 {
			return min(r.Index, last)
		}
		return 0
	case ThisTile:
		if r.Index > 0 {
			return min(base+r.Index, last)
		}
		return max(base+r.Index, 0)
	case End:
		if r.Index > 0 {
			return last
		}
		return max(last+r.Index, 0)
	}
	return base
}
