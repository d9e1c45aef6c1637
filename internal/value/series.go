package value

// Series is the backing store for block!, group!, set-block!, get-block!,
// set-group!, get-group!, and path-family cells: an ordered sequence of
// cells. Grounded on the teacher's BlockValue (internal/value/block.go),
// generalized to be shared by every bracketed/path kind instead of each
// kind owning its own duplicate storage type.
type Series struct {
	Elements []Cell
}

// NewSeries wraps elements in a Series (no copy).
func NewSeries(elements []Cell) *Series { return &Series{Elements: elements} }

func (s *Series) Len() int { return len(s.Elements) }

// Clone performs a shallow copy (the teacher's Clone semantics in
// block.go): element cells are copied (they are value types), nested
// series are shared.
func (s *Series) Clone() *Series {
	cp := make([]Cell, len(s.Elements))
	copy(cp, s.Elements)
	return &Series{Elements: cp}
}

func seriesKindFor(k Kind) bool { return IsBlockKind(k) || IsPathKind(k) }

func Block(elements []Cell) Cell    { return Cell{kind: KindBlock, payload: NewSeries(elements)} }
func Group(elements []Cell) Cell    { return Cell{kind: KindGroup, payload: NewSeries(elements)} }
func SetBlock(elements []Cell) Cell { return Cell{kind: KindSetBlock, payload: NewSeries(elements)} }
func GetBlock(elements []Cell) Cell { return Cell{kind: KindGetBlock, payload: NewSeries(elements)} }
func SetGroup(elements []Cell) Cell { return Cell{kind: KindSetGroup, payload: NewSeries(elements)} }
func GetGroup(elements []Cell) Cell { return Cell{kind: KindGetGroup, payload: NewSeries(elements)} }

// Path constructs a path! from segments. A path's first segment is
// normally a word (the base), later segments are words (field/refinement
// names) or integers (series indices); a segment may itself be a group!
// for computed path picks, per spec.md §4.3's get-path row ("groups
// embedded in the path may evaluate").
func Path(segments []Cell) Cell    { return Cell{kind: KindPath, payload: NewSeries(segments)} }
func SetPath(segments []Cell) Cell { return Cell{kind: KindSetPath, payload: NewSeries(segments)} }
func GetPath(segments []Cell) Cell { return Cell{kind: KindGetPath, payload: NewSeries(segments)} }

// AsSeries extracts the backing Series from any bracketed or path-family
// cell.
func AsSeries(c Cell) (*Series, bool) {
	if !seriesKindFor(c.Kind()) {
		return nil, false
	}
	s, ok := c.Payload().(*Series)
	return s, ok
}

func (c Cell) seriesEqual(other Cell) bool {
	a, aok := AsSeries(c)
	b, bok := AsSeries(other)
	if !aok || !bok {
		return false
	}
	if a == b {
		return true
	}
	if len(a.Elements) != len(b.Elements) {
		return false
	}
	for i := range a.Elements {
		if !a.Elements[i].Equal(b.Elements[i]) {
			return false
		}
	}
	return true
}
