package ui

import (
	"image"
	"strings"

	"github.com/qeesung/image2ascii/convert"
)

// Thumbnail art size in terminal cells.
const (
	thumbWidth  = 28
	thumbHeight = 12
)

// thumbnailURL returns the small rendition of a drink image.
func thumbnailURL(src string) string {
	if src == "" || strings.HasSuffix(src, "/preview") {
		return src
	}
	return src + "/preview"
}

// RenderThumbnail renders a drink image as colored ASCII art.
func RenderThumbnail(img image.Image) string {
	return convertToASCII(img, thumbWidth, thumbHeight)
}

// convertToASCII converts an image to colored ASCII art.
func convertToASCII(img image.Image, targetWidth, targetHeight int) string {
	converter := convert.NewImageConverter()

	opts := convert.DefaultOptions
	opts.FixedWidth = targetWidth
	opts.FixedHeight = targetHeight
	opts.Colored = true
	opts.Ratio = 0.5 // terminal cells are twice as tall as wide

	return converter.Image2ASCIIString(img, &opts)
}
