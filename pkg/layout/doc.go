// Package layout implements the image-to-placement compiler.
//
// A layout [Config] binds a raster image to an ordered set of color rules.
// [Compile] walks the image pixel by pixel (rows outer, columns inner) and
// emits one [Placement] for every color rule a pixel matches. The pixel's
// alpha channel carries two signals: full transparency (alpha exactly 0)
// skips the pixel entirely, and when per-pixel rotation is enabled the
// alpha value selects a rotation angle through fixed half-open bands.
//
// # Multi-match fan-out
//
// Rule matching is deliberately not exclusive. A pixel whose color matches
// k rules emits k placements at the same position (and, when rotation is
// enabled, the same rotation). This lets a single pixel spawn a stack of
// co-located objects - for example a floor tile plus a prop standing on
// it - and must not be "optimized" into first-match-wins.
//
// # Coordinates
//
// Pixel (x, y) maps onto two of the three spatial axes selected by
// [BuildAxes], scaled by the configured spacing. A spacing of exactly zero
// means "unit grid", not "collapse to origin".
package layout
