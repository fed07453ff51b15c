package spherical

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidCrop indicates crop geometry that cannot describe a
	// cropped area inside its full panorama.
	ErrInvalidCrop = errors.New("invalid crop parameters")

	// ErrMalformedCrop indicates a crop string that does not parse as six
	// colon-delimited non-negative integers.
	ErrMalformedCrop = errors.New("malformed crop specification")
)

// Crop describes a cropped partial panorama's placement within its full
// panorama canvas. All values are pixels.
type Crop struct {
	CroppedWidth  int
	CroppedHeight int
	FullWidth     int
	FullHeight    int
	Left          int
	Top           int
}

// ParseCrop parses the colon-delimited crop form
// "croppedWidth:croppedHeight:fullWidth:fullHeight:left:top". It only
// checks shape; geometric consistency is checked by Validate during XML
// generation.
func ParseCrop(s string) (*Crop, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: want 6 colon-delimited integers, got %q", ErrMalformedCrop, s)
	}
	values := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w: field %d of %q is not a non-negative integer", ErrMalformedCrop, i+1, s)
		}
		values[i] = v
	}
	return &Crop{
		CroppedWidth:  values[0],
		CroppedHeight: values[1],
		FullWidth:     values[2],
		FullHeight:    values[3],
		Left:          values[4],
		Top:           values[5],
	}, nil
}

// Validate checks geometric consistency: the full panorama must have
// positive dimensions, the cropped area must be non-empty and fit within
// the full dimensions, and the offsets must keep the cropped area entirely
// inside the canvas. Offsets that translate the domain are rejected so
// players never have to wrap.
func (c *Crop) Validate() error {
	if c.FullWidth <= 0 || c.FullHeight <= 0 {
		return fmt.Errorf(
			"%w: full pano dimensions are invalid: width = %d height = %d",
			ErrInvalidCrop, c.FullWidth, c.FullHeight)
	}
	if c.CroppedWidth <= 0 || c.CroppedHeight <= 0 ||
		c.CroppedWidth > c.FullWidth || c.CroppedHeight > c.FullHeight {
		return fmt.Errorf(
			"%w: cropped area dimensions are invalid: width = %d height = %d",
			ErrInvalidCrop, c.CroppedWidth, c.CroppedHeight)
	}
	totalWidth := c.Left + c.CroppedWidth
	totalHeight := c.Top + c.CroppedHeight
	if c.Left < 0 || c.Top < 0 ||
		totalWidth > c.FullWidth || totalHeight > c.FullHeight {
		return fmt.Errorf(
			"%w: cropped area offsets are invalid: left = %d top = %d left+cropped width: %d top+cropped height: %d",
			ErrInvalidCrop, c.Left, c.Top, totalWidth, totalHeight)
	}
	return nil
}
