package layout

// MapCoord projects a 2D pixel coordinate onto the spatial axis pair
// selected by axes, scaled by spacing. A spacing of exactly 0 means
// "unit grid" and is treated as a multiplier of 1.
//
// Mapping by axis selection:
//
//	XY -> (x, y, 0)
//	XZ -> (x, 0, y)
//	YZ -> (0, x, y)
//
// An unrecognized selector maps to the zero vector. The selector enum is
// closed, so that branch is unreachable from validated configs.
func MapCoord(axes BuildAxes, x, y, spacing float64) Vec3 {
	m := spacing
	if spacing == 0 {
		m = 1
	}

	switch axes {
	case BuildXY:
		return Vec3{X: x, Y: y}.Scale(m)
	case BuildXZ:
		return Vec3{X: x, Z: y}.Scale(m)
	case BuildYZ:
		return Vec3{Y: x, Z: y}.Scale(m)
	default:
		return Vec3{}
	}
}
