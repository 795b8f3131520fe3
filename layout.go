package drift

import "math"

// pushAttenuation is how much non-centered items dim at full push progress.
const pushAttenuation = 0.75

// colorSteps quantizes label color interpolation so distinct output values
// stay coarse. Anti-churn for renderers that cache by color; not a
// correctness requirement.
const colorSteps = 8

// DefaultLabelColor is the reference hue labels interpolate from.
var DefaultLabelColor = Color{R: 0.62, G: 0.73, B: 0.9, A: 1}

// LayoutParams is the full input to the projection functions: selection,
// live axis offsets, and secondary animation progress. The functions are
// pure; identical params and indices always produce identical output.
type LayoutParams struct {
	Grid GridConfig

	Selection        Selection
	OffsetX, OffsetY float64

	// PushProgress is the bounce morph progress driving radial push.
	PushProgress float64
	// VerticalFade and HorizontalFade are the overlay fade progresses.
	VerticalFade   float64
	HorizontalFade float64

	ReferenceColor Color
}

// ItemPlacement is the spatial part of an item's projection.
type ItemPlacement struct {
	X, Y, Scale float64
}

// axisDistances returns the item's center distance in grid units on each
// axis. The series axis uses the global offset; the item axis uses it only
// for the currently-selected series. Other series rest on their own current
// item.
func axisDistances(p LayoutParams, series, item, currentItem int) (dx, dy float64) {
	dx = float64(series-p.Selection.Series) + p.OffsetX
	if series == p.Selection.Series {
		dy = float64(item-p.Selection.Item) + p.OffsetY
	} else {
		dy = float64(item - currentItem)
	}
	return dx, dy
}

// CalculateItemLayout projects one grid item into pixel position and scale.
// currentItem is the item the given series rests on.
func CalculateItemLayout(p LayoutParams, series, item, currentItem int) ItemPlacement {
	dx, dy := axisDistances(p, series, item, currentItem)

	x := dx * p.Grid.SeriesSpacing
	y := dy * p.Grid.ItemSpacing

	// Radial push: displace non-centered items outward from the center
	// along their own direction vector while the bounce morph is active.
	if p.PushProgress > 0 {
		if length := math.Hypot(x, y); length > 0 {
			push := p.Grid.PushDistance * p.PushProgress
			x += x / length * push
			y += y / length * push
		}
	}

	dist := math.Hypot(dx, dy)
	scale := math.Max(p.Grid.MinScale, p.Grid.MaxScale-dist/p.Grid.ScaleDistance) / p.Grid.MaxScale

	return ItemPlacement{X: x, Y: y, Scale: scale}
}

// CalculateOpacity projects one grid item's opacity. An item resting on its
// series' current item is fully opaque; any other item is visible only
// within the fade range of series offset, fading linearly to zero at the
// edge. Independently, while a push or fade overlay is active, everything
// but the centered item is attenuated by up to 75%. The two attenuations
// multiply.
func CalculateOpacity(p LayoutParams, series, item, currentItem int) float64 {
	dx, dy := axisDistances(p, series, item, currentItem)

	opacity := 1.0
	if item != currentItem {
		opacity = 1.0 - math.Abs(dx)/p.Grid.FadeRange
		if opacity < 0 {
			opacity = 0
		}
	}

	if active := attenuationProgress(p); active > 0 {
		centered := dx == 0 && dy == 0
		if !centered {
			opacity *= 1 - pushAttenuation*active
		}
	}
	return opacity
}

// attenuationProgress is how strongly the push/fade dimming applies: the
// strongest of the bounce morph and the two overlay fades.
func attenuationProgress(p LayoutParams) float64 {
	a := p.PushProgress
	if p.VerticalFade > a {
		a = p.VerticalFade
	}
	if p.HorizontalFade > a {
		a = p.HorizontalFade
	}
	if a > 1 {
		a = 1
	}
	return a
}

// CalculateLabelLayout projects one item's label block. Returns false when
// the owning item is invisible; the renderer skips the label entirely.
// Side and vertical title opacities mirror the corresponding axis fade.
func CalculateLabelLayout(p LayoutParams, series, item, currentItem int) (LabelLayout, bool) {
	opacity := CalculateOpacity(p, series, item, currentItem)
	if opacity == 0 {
		return LabelLayout{}, false
	}
	placement := CalculateItemLayout(p, series, item, currentItem)
	dx, dy := axisDistances(p, series, item, currentItem)

	dist := math.Hypot(dx, dy) / p.Grid.FadeRange
	if dist > 1 {
		dist = 1
	}

	return LabelLayout{
		X:                    placement.X,
		Y:                    placement.Y,
		TitleOpacity:         opacity,
		SideTitleOpacity:     p.HorizontalFade,
		VerticalTitleOpacity: p.VerticalFade,
		Color:                lerpColor(p.ReferenceColor, ColorWhite, quantize(dist)),
	}, true
}

// quantize rounds t in [0, 1] to the nearest of colorSteps coarse steps.
func quantize(t float64) float64 {
	return math.Round(t*colorSteps) / colorSteps
}

// lerpColor interpolates each component of a toward b by t.
func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
