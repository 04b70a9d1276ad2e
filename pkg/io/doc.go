// Package io provides JSON import and export of polaroid descriptions.
//
// # Overview
//
// A description captures everything about a polaroid except the photo pixels:
// the normalized metadata, the fields hidden from the caption, the style and
// the orientation. It is what `polaroid inspect --json` prints and what
// `polaroid export --from` reads back, which makes it easy to hand-edit
// captions (subject, location, character) and re-render.
//
// # JSON Format
//
//	{
//	  "file": "IMG_0001.jpg",
//	  "orientation": 6,
//	  "metadata": {
//	    "make": "Canon",
//	    "model": "Canon EOS R5",
//	    "shutter": "1/250s",
//	    "locationName": "Kyoto"
//	  },
//	  "hidden": ["latitude", "longitude"],
//	  "style": {"background": "white", "font": "Montserrat", "safe_gutters": false}
//	}
//
// Every key is optional on import. Metadata keys must be field names; unknown
// keys are rejected.
package io
