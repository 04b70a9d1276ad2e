// Package pkg provides the libraries behind the polaroid command.
//
// # Overview
//
// Polaroid frames a photo on a 1080x1920 paper-style canvas and writes a
// caption under it from the photo's EXIF metadata. The pkg directory is
// organized bottom-up:
//
//  1. [metadata] and [orientation] - EXIF extraction, normalization and display config
//  2. [layout] - caption lines, separators and brand marks
//  3. [photo], [compose] and [fonts] - the selected photo, the immutable composition and typefaces
//  4. [barrier], [capture] and [render] - resource readiness, the export state machine and rasterization
//  5. [export] and [io] - PNG delivery and JSON documents
//  6. [pipeline] - the editing session tying everything together
//
// # Architecture
//
//	photo file
//	     ↓
//	[metadata] Extract → Normalize (+ overrides)
//	     ↓
//	[compose] Spec snapshot (metadata, display config, orientation, style)
//	     ↓
//	[capture] staging → resource-wait → rasterizing
//	     ↓
//	[export] polaroid.png
//
// # Quick Start
//
//	import "github.com/matzehuels/polaroid/pkg/pipeline"
//
//	runner, err := pipeline.NewRunner(pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	defer runner.Close()
//
//	if _, err := runner.Select(ctx, "DSC_0042.jpg"); err != nil {
//	    return err
//	}
//	if err := runner.Toggle("latitude"); err != nil {
//	    return err
//	}
//	_, err = runner.Export(ctx, export.DirSink{Dir: "."})
//
// # Errors
//
// Failures carry a code from [errors]. Metadata extraction failures are
// absorbed (the photo is framed without a caption); resource and rasterization
// failures abort the export they occur in and leave the session usable.
//
// [metadata]: https://pkg.go.dev/github.com/matzehuels/polaroid/pkg/metadata
// [orientation]: https://pkg.go.dev/github.com/matzehuels/polaroid/pkg/orientation
// [layout]: https://pkg.go.dev/github.com/matzehuels/polaroid/pkg/layout
// [photo]: https://pkg.go.dev/github.com/matzehuels/polaroid/pkg/photo
// [compose]: https://pkg.go.dev/github.com/matzehuels/polaroid/pkg/compose
// [fonts]: https://pkg.go.dev/github.com/matzehuels/polaroid/pkg/fonts
// [barrier]: https://pkg.go.dev/github.com/matzehuels/polaroid/pkg/barrier
// [capture]: https://pkg.go.dev/github.com/matzehuels/polaroid/pkg/capture
// [render]: https://pkg.go.dev/github.com/matzehuels/polaroid/pkg/render
// [export]: https://pkg.go.dev/github.com/matzehuels/polaroid/pkg/export
// [io]: https://pkg.go.dev/github.com/matzehuels/polaroid/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/polaroid/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/polaroid/pkg/errors
package pkg
