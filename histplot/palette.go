// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package histplot

import "image/color"

// Qualitative palettes from Color Brewer.
var Set1_9 = []color.Color{color.RGBA{228, 26, 28, 255}, color.RGBA{55, 126, 184, 255}, color.RGBA{77, 175, 74, 255}, color.RGBA{152, 78, 163, 255}, color.RGBA{255, 127, 0, 255}, color.RGBA{255, 255, 51, 255}, color.RGBA{166, 86, 40, 255}, color.RGBA{247, 129, 191, 255}, color.RGBA{153, 153, 153, 255}}
var Dark2_8 = []color.Color{color.RGBA{27, 158, 119, 255}, color.RGBA{217, 95, 2, 255}, color.RGBA{117, 112, 179, 255}, color.RGBA{231, 41, 138, 255}, color.RGBA{102, 166, 30, 255}, color.RGBA{230, 171, 2, 255}, color.RGBA{166, 118, 29, 255}, color.RGBA{102, 102, 102, 255}}

// Palettes maps palette names to their colors.
var Palettes = map[string][]color.Color{
	"set1":  Set1_9,
	"dark2": Dark2_8,
}

// overlayAlpha keeps later series from hiding earlier ones.
const overlayAlpha = 0xa0

// seriesColor returns the fill for the i'th series of pal.
func seriesColor(pal []color.Color, i int) color.Color {
	r, g, b, _ := pal[i%len(pal)].RGBA()
	return color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), overlayAlpha}
}
