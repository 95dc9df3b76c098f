package raster

import (
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	_ "github.com/ftrvxmtrx/tga" // register TGA decoder
	_ "golang.org/x/image/bmp"   // register BMP decoder
	_ "golang.org/x/image/tiff"  // register TIFF decoder

	"github.com/matzehuels/pixelforge/pkg/errors"
)

// Load decodes the image at path and returns it as a Source.
//
// Lossy inputs are decoded as-is; bit-exact color fidelity of the file
// itself is the caller's responsibility (the compiler matches colors
// exactly by default, so JPEG artifacts usually call for a tolerance).
func Load(path string) (Source, error) {
	if err := errors.ValidateImagePath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeImageNotFound, err, "image %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "open %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode %s", path)
	}

	return FromImage(img), nil
}
