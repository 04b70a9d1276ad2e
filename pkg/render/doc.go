// Package render draws a polaroid composition into a 1080x1920 PNG.
//
// # Overview
//
// A composition is first mounted as a [Scene]. The scene declares the images
// and fonts it needs as barrier resources; once those are ready the
// [Rasterizer] lays out and paints the frame:
//
//   - the photo, upright and scaled down to fit its box,
//   - a brand line (a logo for known makes, otherwise the make as text),
//   - the camera, settings, people and shoot lines.
//
// # Targets
//
// Two render targets mount scenes for capture. [Overlay] builds a fresh scene
// per export and discards it afterwards. [Inline] keeps the latest scene
// mounted and reuses its loaded resources; it backs debug mode.
//
//	inline := render.NewInline(render.Options{})
//	overlay := render.NewOverlay(render.Options{})
//	o := capture.NewOrchestrator(inline, overlay, render.Rasterizer{})
//
// # Logos
//
// Brand logos are read from Options.LogoDir ("canon.png", "nikon.png", ...)
// when present. Otherwise a wordmark in the brand colour is drawn.
package render
