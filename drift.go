package drift

// Vec2 is a 2D vector used for positions, offsets, and velocities
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the reference "fully centered" label color.
var ColorWhite = Color{1, 1, 1, 1}

// HitShape is a hit-testable region in surface coordinates. Used for the
// action button and the circular scrubber target.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Direction identifies the axis a gesture has locked onto.
type Direction uint8

const (
	DirectionNone       Direction = iota // gesture has not locked yet
	DirectionHorizontal                  // series axis
	DirectionVertical                    // item axis within the selected series
)

// String returns the direction name for debugging and test output.
func (d Direction) String() string {
	switch d {
	case DirectionHorizontal:
		return "horizontal"
	case DirectionVertical:
		return "vertical"
	default:
		return "none"
	}
}

// Selection is the reference frame origin: all axis offsets are computed
// relative to this (series, item) pair.
type Selection struct {
	Series int
	Item   int
}

// Catalog supplies the grid dimensions and each series' resting item.
// The engine never fetches or persists content; it only needs counts.
type Catalog interface {
	// SeriesCount returns the number of series on the horizontal axis.
	SeriesCount() int
	// ItemCount returns the number of items in the given series.
	ItemCount(series int) int
	// CurrentItem returns the item a series rests on when it is not the
	// selected series.
	CurrentItem(series int) int
}

// ItemLayout is the drawable projection of one grid item for a single frame.
// Derived, never persisted; recomputed every active frame.
type ItemLayout struct {
	Series  int
	Item    int
	X       float64
	Y       float64
	Scale   float64
	Opacity float64

	Label    LabelLayout
	HasLabel bool
}

// LabelLayout is the drawable projection of one item's label block.
type LabelLayout struct {
	X                    float64
	Y                    float64
	TitleOpacity         float64
	SideTitleOpacity     float64
	VerticalTitleOpacity float64
	Color                Color
}
