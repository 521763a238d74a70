package terrain

// clusterTracker partitions the grid into fixed-size square clusters and
// keeps a per-frame active flag for each. Only cells inside active clusters
// are handed to the material rules; everything else is skipped that frame.
//
// A cluster is active when it holds the ball's neighborhood, when a cell
// inside it changed last frame, or when it sits directly below a cluster
// that changed. The pre-activation below keeps falling material from
// stalling at cluster boundaries.
type clusterTracker struct {
	cw, ch int
	size   int
	active []bool
}

func newClusterTracker(w, h, size int) *clusterTracker {
	if size <= 0 {
		size = 8
	}
	cw := (w + size - 1) / size
	ch := (h + size - 1) / size
	return &clusterTracker{cw: cw, ch: ch, size: size, active: make([]bool, cw*ch)}
}

func (t *clusterTracker) clusterIndex(x, y int) int {
	return (y/t.size)*t.cw + x/t.size
}

func (t *clusterTracker) mark(ci int) {
	if ci >= 0 && ci < len(t.active) {
		t.active[ci] = true
	}
}

// rebuild recomputes the active set from the cells that changed last frame
// plus a 3x3 cluster neighborhood around the ball.
func (t *clusterTracker) rebuild(changed []cellPos, ballX, ballY int) {
	for i := range t.active {
		t.active[i] = false
	}
	for _, c := range changed {
		ci := t.clusterIndex(c.x, c.y)
		t.mark(ci)
		t.mark(ci + t.cw)
	}

	bcx, bcy := ballX/t.size, ballY/t.size
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			cx, cy := bcx+dx, bcy+dy
			if cx < 0 || cx >= t.cw || cy < 0 || cy >= t.ch {
				continue
			}
			t.mark(cy*t.cw + cx)
		}
	}
}

func (t *clusterTracker) activeAt(x, y int) bool {
	return t.active[t.clusterIndex(x, y)]
}

func (t *clusterTracker) activeCount() int {
	n := 0
	for _, a := range t.active {
		if a {
			n++
		}
	}
	return n
}
