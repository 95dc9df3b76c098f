package layout

// Rotation band angles, selected by pixel alpha.
const (
	angleNone         = 0.0
	angleQuarter      = 90.0
	angleHalf         = 180.0
	angleThreeQuarter = 270.0
)

// AngleForAlpha maps a normalized alpha value to a base rotation angle in
// degrees using fixed half-open bands, most specific first:
//
//	a > 0.9        -> 0
//	0.8 < a <= 0.9 -> 90
//	0.7 < a <= 0.8 -> 180
//	0.5 < a <= 0.7 -> 270
//	0 < a <= 0.5   -> 0
//
// The low band (0, 0.5] deliberately yields the same 0 as full opacity:
// low-but-nonzero alpha carries no rotation signal. Alpha exactly 0 never
// reaches the decoder because fully transparent pixels are skipped before
// rotation is computed.
func AngleForAlpha(a float64) float64 {
	switch {
	case a > 0.9:
		return angleNone
	case a > 0.8:
		return angleQuarter
	case a > 0.7:
		return angleHalf
	case a > 0.5:
		return angleThreeQuarter
	default:
		return angleNone
	}
}

// DecodeRotation expands a base angle onto every axis selected by mask.
// Each selected axis receives the full angle; unselected axes stay 0.
// Multiple simultaneous axes are valid: mask {X, Z} with angle 90 yields
// (90, 0, 90), not a divided share.
func DecodeRotation(mask AxisMask, angle float64) Vec3 {
	var v Vec3
	if mask.Has(AxisX) {
		v.X = angle
	}
	if mask.Has(AxisY) {
		v.Y = angle
	}
	if mask.Has(AxisZ) {
		v.Z = angle
	}
	return v
}
