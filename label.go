package topology

// Location classifies a point relative to a geometry.
type Location int8

const (
	Interior Location = iota
	Boundary
	Exterior
)

// LocNone marks an as yet unknown location.
const LocNone Location = -1

func (l Location) String() string {
	switch l {
	case Interior:
		return "i"
	case Boundary:
		return "b"
	case Exterior:
		return "e"
	}
	return "-"
}

// Positions on a labelled graph component: on the component itself, and on
// its left and right sides when the component bounds an area.
const (
	posOn = iota
	posLeft
	posRight
)

func oppositePos(pos int) int {
	switch pos {
	case posLeft:
		return posRight
	case posRight:
		return posLeft
	}
	return pos
}

// A Label records the topological relationship of a graph component to each
// of the (up to two) input geometries: a location On the component itself
// and, for components bounding an area, on its Left and Right sides. Every
// labelled construct must resolve to a full non-LocNone label before ring
// building proceeds.
type Label struct {
	loc  [2][3]Location
	area [2]bool
}

func emptyLabel() *Label {
	return &Label{loc: [2][3]Location{
		{LocNone, LocNone, LocNone},
		{LocNone, LocNone, LocNone},
	}}
}

// newLineLabel labels a line component of geometry gi.
func newLineLabel(gi int, on Location) *Label {
	l := emptyLabel()
	l.loc[gi][posOn] = on
	return l
}

// newAreaLabel labels an area-bounding component of geometry gi. The label is
// area-flavoured for both geometries: side locations for the other geometry
// are unknown as yet, but exist, so label propagation around a node fills
// them in.
func newAreaLabel(gi int, on, left, right Location) *Label {
	l := emptyLabel()
	l.loc[gi][posOn] = on
	l.loc[gi][posLeft] = left
	l.loc[gi][posRight] = right
	l.area[0], l.area[1] = true, true
	return l
}

func (l *Label) copy() *Label {
	c := *l
	return &c
}

func (l *Label) location(gi, pos int) Location {
	return l.loc[gi][pos]
}

func (l *Label) on(gi int) Location {
	return l.loc[gi][posOn]
}

func (l *Label) setLocation(gi, pos int, loc Location) {
	l.loc[gi][pos] = loc
	if pos != posOn {
		l.area[gi] = true
	}
}

func (l *Label) setOn(gi int, loc Location) {
	l.loc[gi][posOn] = loc
}

func (l *Label) setAllLocations(gi int, loc Location) {
	for pos := range l.loc[gi] {
		l.loc[gi][pos] = loc
	}
	l.area[gi] = true
}

func (l *Label) setAllLocationsIfNone(gi int, loc Location) {
	for pos := range l.loc[gi] {
		if l.loc[gi][pos] == LocNone {
			l.loc[gi][pos] = loc
		}
	}
}

// flip swaps the left and right sides, for traversing an edge backwards.
func (l *Label) flip() {
	for gi := 0; gi < 2; gi++ {
		l.loc[gi][posLeft], l.loc[gi][posRight] = l.loc[gi][posRight], l.loc[gi][posLeft]
	}
}

// merge fills in the LocNone parts of l from other.
func (l *Label) merge(other *Label) {
	for gi := 0; gi < 2; gi++ {
		if other.area[gi] {
			l.area[gi] = true
		}
		for pos := range l.loc[gi] {
			if l.loc[gi][pos] == LocNone && other.loc[gi][pos] != LocNone {
				l.loc[gi][pos] = other.loc[gi][pos]
			}
		}
	}
}

func (l *Label) isArea() bool {
	return l.area[0] || l.area[1]
}

func (l *Label) isAreaAt(gi int) bool {
	return l.area[gi]
}

func (l *Label) isLineAt(gi int) bool {
	return !l.area[gi]
}

// isNone reports whether the label carries no information for geometry gi.
func (l *Label) isNone(gi int) bool {
	return l.loc[gi][posOn] == LocNone && l.loc[gi][posLeft] == LocNone && l.loc[gi][posRight] == LocNone
}

func (l *Label) isAnyNone(gi int) bool {
	return l.loc[gi][posOn] == LocNone || l.loc[gi][posLeft] == LocNone || l.loc[gi][posRight] == LocNone
}

// toLine collapses an area label to a pure line label, keeping only the On
// location. Used for dimensionally collapsed edges.
func (l *Label) toLine(gi int) {
	if l.area[gi] {
		l.loc[gi] = [3]Location{l.loc[gi][posOn], LocNone, LocNone}
		l.area[gi] = false
	}
}

func (l *Label) allPositionsEqual(gi int, loc Location) bool {
	return l.loc[gi][posOn] == loc && l.loc[gi][posLeft] == loc && l.loc[gi][posRight] == loc
}

// geometryCount returns how many input geometries this label has information
// for.
func (l *Label) geometryCount() int {
	n := 0
	for gi := 0; gi < 2; gi++ {
		if !l.isNone(gi) {
			n++
		}
	}
	return n
}

func (l *Label) String() string {
	s := make([]byte, 0, 16)
	s = append(s, '[')
	for gi := 0; gi < 2; gi++ {
		if gi == 1 {
			s = append(s, ' ')
		}
		for pos := range l.loc[gi] {
			s = append(s, l.loc[gi][pos].String()[0])
		}
	}
	s = append(s, ']')
	return string(s)
}

////////////////

const depthNone = -1

// A Depth is the per-side signed coverage count of an edge, accumulated while
// merging duplicate edges. After normalizing, a side with positive depth lies
// in the interior of the corresponding geometry. An edge whose two sides end
// up at equal depth is a dimensional collapse and is relabelled as a line.
type Depth struct {
	depth [2][3]int
}

func newDepth() *Depth {
	return &Depth{depth: [2][3]int{
		{depthNone, depthNone, depthNone},
		{depthNone, depthNone, depthNone},
	}}
}

func depthAtLocation(loc Location) int {
	if loc == Interior {
		return 1
	}
	return 0
}

func (d *Depth) get(gi, pos int) int {
	return d.depth[gi][pos]
}

func (d *Depth) add(lbl *Label) {
	for gi := 0; gi < 2; gi++ {
		for pos := posLeft; pos <= posRight; pos++ {
			loc := lbl.location(gi, pos)
			if loc == Interior || loc == Exterior {
				if d.depth[gi][pos] == depthNone {
					d.depth[gi][pos] = depthAtLocation(loc)
				} else {
					d.depth[gi][pos] += depthAtLocation(loc)
				}
			}
		}
	}
}

func (d *Depth) isNull() bool {
	for gi := 0; gi < 2; gi++ {
		for pos := range d.depth[gi] {
			if d.depth[gi][pos] != depthNone {
				return false
			}
		}
	}
	return true
}

func (d *Depth) isNullAt(gi int) bool {
	return d.depth[gi][posLeft] == depthNone && d.depth[gi][posRight] == depthNone
}

func (d *Depth) delta(gi int) int {
	return d.depth[gi][posRight] - d.depth[gi][posLeft]
}

func (d *Depth) location(gi, pos int) Location {
	if d.depth[gi][pos] > 0 {
		return Interior
	}
	return Exterior
}

// normalize reduces depths to 0/1, keeping only whether each side is covered.
func (d *Depth) normalize() {
	for gi := 0; gi < 2; gi++ {
		if d.isNullAt(gi) {
			continue
		}
		min := d.depth[gi][posLeft]
		if d.depth[gi][posRight] < min {
			min = d.depth[gi][posRight]
		}
		if min < 0 {
			min = 0
		}
		for pos := posLeft; pos <= posRight; pos++ {
			v := 0
			if d.depth[gi][pos] > min {
				v = 1
			}
			d.depth[gi][pos] = v
		}
	}
}
