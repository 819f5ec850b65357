// Package canvas implements the design canvas state and print-area
// coordinate engine behind the Modoo admin console's garment customizer.
//
// # Overview
//
// A customized product is described per printable side: a ProductSide
// supplies the side's mockup image and print-area geometry, and an ordered
// sequence of design layers (text, images, shapes) is placed inside that
// print area. The same design must render consistently across contexts that
// disagree about pixels: the interactive editor, small previews, and the
// production/export pipeline all use different render scales and canvas
// sizes.
//
// The engine therefore distinguishes two coordinate spaces:
//
//   - Canvas-pixel space: coordinates as drawn on one particular canvas,
//     dependent on the current render scale and canvas dimensions.
//   - Print-area-relative space: coordinates relative to the print area's
//     own origin in the side's native pixel units, independent of any
//     particular render.
//
// Projection converts between the two. All geometry handed to the state
// codec is print-area-relative; pixels exist only at render time.
//
// # Packages
//
//   - canvas (this package): geometry primitives, product side descriptors,
//     the design layer type, color resolution, and coordinate projection.
//   - state: the per-side layer store and its versioned JSON codec.
//   - anchor: named logo placement presets (left-chest, right-chest, center).
//   - export: real-world unit conversion and production metadata extraction.
//   - render: two-phase preview/production rendering onto an RGBA canvas.
//   - session: per-editing-session context tying the pieces together.
//   - mall: partner-mall batch logo placement.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in degrees, clockwise (the convention of the persisted format)
package canvas
