package mp4

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// ErrMoovNotFound indicates the stream holds no movie box, so it is not an
// editable MP4 file.
var ErrMoovNotFound = errors.New("moov box not found")

// Container is the top-level file: an ordered sequence of boxes.
type Container struct {
	Children []*Box
}

// Load indexes the box structure of an MP4 stream. Leaf payloads stay in
// the stream; callers that need them read at Box.ContentStart. The stream
// must remain open for the lifetime of the returned container.
func Load(r io.ReadSeeker) (*Container, error) {
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("measuring stream: %w", err)
	}

	container := &Container{}
	pos := int64(0)
	for pos < end {
		box, err := readBox(r, pos, end)
		if err != nil {
			return nil, err
		}
		container.Children = append(container.Children, box)
		pos += box.Size()
	}

	if container.MoovBox() == nil {
		return nil, ErrMoovNotFound
	}

	logrus.WithFields(logrus.Fields{
		"function": "Load",
		"boxes":    len(container.Children),
		"size":     end,
	}).Debug("Indexed MP4 box structure")
	return container, nil
}

// MoovBox returns the movie box, or nil when the container holds none.
func (c *Container) MoovBox() *Box {
	for _, box := range c.Children {
		if box.Name == TagMoov {
			return box
		}
	}
	return nil
}

// Resize recomputes every container box's declared size from its children.
// Required after any AddChild or RemoveChildren before Save.
func (c *Container) Resize() {
	for _, box := range c.Children {
		box.resize()
	}
}

// Save writes the container to out, copying unmaterialized leaf payloads
// through from in. It never writes in place: box sizes may have changed, so
// out must be a distinct stream.
//
// TODO: rewrite stco/co64 chunk offsets when a resized moov precedes mdat.
func (c *Container) Save(in io.ReadSeeker, out io.Writer) error {
	for _, box := range c.Children {
		if err := box.write(in, out); err != nil {
			return err
		}
	}
	logrus.WithFields(logrus.Fields{
		"function": "Save",
		"boxes":    len(c.Children),
	}).Debug("Saved MP4 box structure")
	return nil
}
