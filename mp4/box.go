package mp4

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrTruncatedBox indicates a box header or payload extends past the
	// end of its enclosing box or file.
	ErrTruncatedBox = errors.New("truncated box")

	// ErrNotContainer indicates a child was added to a non-container box.
	ErrNotContainer = errors.New("box is not a container")
)

// Box is a single node of the box tree. A container box carries an ordered
// list of children; a leaf box carries either materialized Contents or, when
// Contents is nil, a (Position, ContentSize) reference into the stream it
// was loaded from.
type Box struct {
	// Name is the 4-character box type tag.
	Name string

	// Position is the byte offset of the box header in the source stream.
	// Meaningless for boxes created in memory.
	Position int64

	// HeaderSize is 8 for a compact header, 16 when the box was read with
	// a 64-bit largesize field. Boxes are written back with the header
	// width they were read with.
	HeaderSize int64

	// ContentSize is the declared payload length, excluding the header.
	// Stale for container boxes after a mutation until Container.Resize.
	ContentSize int64

	// Contents is the materialized payload, nil when the payload still
	// lives in the source stream.
	Contents []byte

	// Children holds the ordered child boxes of a container box.
	Children []*Box
}

// Size returns the full byte length of the box including its header.
func (b *Box) Size() int64 {
	return b.HeaderSize + b.ContentSize
}

// ContentStart returns the byte offset of the box payload in the source
// stream.
func (b *Box) ContentStart() int64 {
	return b.Position + b.HeaderSize
}

// AddChild appends a child box. It reports false when the receiver is not a
// container type, in which case the tree is left unchanged. The receiver's
// cached size becomes stale until the next Container.Resize.
func (b *Box) AddChild(child *Box) bool {
	if !IsContainer(b.Name) {
		return false
	}
	b.Children = append(b.Children, child)
	return true
}

// RemoveChildren drops every direct child with the given tag. The receiver's
// cached size becomes stale until the next Container.Resize.
func (b *Box) RemoveChildren(tag string) {
	b.Children = FilterBoxes(b.Children, tag)
}

// FilterBoxes returns boxes with every box of the given tag removed. The
// input slice is not modified.
func FilterBoxes(boxes []*Box, tag string) []*Box {
	kept := make([]*Box, 0, len(boxes))
	for _, box := range boxes {
		if box.Name != tag {
			kept = append(kept, box)
		}
	}
	return kept
}

// resize recomputes the content size of a container box from its children,
// leaf boxes are left untouched. Children are resized first so ancestor
// sizes account for nested mutations.
func (b *Box) resize() {
	if !IsContainer(b.Name) {
		return
	}
	var size int64
	for _, child := range b.Children {
		child.resize()
		size += child.Size()
	}
	b.ContentSize = size
}

// readBox parses the box starting at offset start. Container boxes are
// recursed into; leaf payloads are indexed, not read.
func readBox(r io.ReadSeeker, start, end int64) (*Box, error) {
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking box header at %d: %w", start, err)
	}

	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: header at %d: %v", ErrTruncatedBox, start, err)
	}
	size := int64(binary.BigEndian.Uint32(header[0:4]))
	name := string(header[4:8])

	headerSize := int64(8)
	switch size {
	case 1:
		var large [8]byte
		if _, err := io.ReadFull(r, large[:]); err != nil {
			return nil, fmt.Errorf("%w: largesize of %q at %d: %v", ErrTruncatedBox, name, start, err)
		}
		size = int64(binary.BigEndian.Uint64(large[:]))
		headerSize = 16
	case 0:
		// A zero size means the box runs to the end of the enclosing space.
		size = end - start
	}

	if size < headerSize || start+size > end {
		return nil, fmt.Errorf("%w: box %q at %d declares size %d", ErrTruncatedBox, name, start, size)
	}

	box := &Box{
		Name:        name,
		Position:    start,
		HeaderSize:  headerSize,
		ContentSize: size - headerSize,
	}

	if IsContainer(name) {
		pos := box.ContentStart()
		boxEnd := start + size
		for pos < boxEnd {
			child, err := readBox(r, pos, boxEnd)
			if err != nil {
				return nil, err
			}
			box.Children = append(box.Children, child)
			pos += child.Size()
		}
	}
	return box, nil
}

// write marshals the box to out. Materialized leaves are written from
// memory; unmaterialized leaves are copied through from the source stream.
func (b *Box) write(in io.ReadSeeker, out io.Writer) error {
	if err := b.writeHeader(out); err != nil {
		return err
	}

	switch {
	case IsContainer(b.Name):
		for _, child := range b.Children {
			if err := child.write(in, out); err != nil {
				return err
			}
		}
	case b.Contents != nil:
		if _, err := out.Write(b.Contents); err != nil {
			return fmt.Errorf("writing %q contents: %w", b.Name, err)
		}
	default:
		if _, err := in.Seek(b.ContentStart(), io.SeekStart); err != nil {
			return fmt.Errorf("seeking %q contents at %d: %w", b.Name, b.ContentStart(), err)
		}
		if _, err := io.CopyN(out, in, b.ContentSize); err != nil {
			return fmt.Errorf("copying %q contents: %w", b.Name, err)
		}
	}
	return nil
}

func (b *Box) writeHeader(out io.Writer) error {
	buf := make([]byte, b.HeaderSize)
	if b.HeaderSize == 16 {
		binary.BigEndian.PutUint32(buf[0:4], 1)
		copy(buf[4:8], b.Name)
		binary.BigEndian.PutUint64(buf[8:16], uint64(b.Size()))
	} else {
		binary.BigEndian.PutUint32(buf[0:4], uint32(b.Size()))
		copy(buf[4:8], b.Name)
	}
	if _, err := out.Write(buf); err != nil {
		return fmt.Errorf("writing %q header: %w", b.Name, err)
	}
	return nil
}
