package spherical

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/spatialmedia/mp4"
)

// ErrBoxInsert indicates the box model rejected the metadata box append,
// leaving the tree unsafe to persist.
var ErrBoxInsert = errors.New("failed to insert spherical metadata box")

// NewSphericalBox builds a uuid extension box whose content is the 16-byte
// spherical signature followed by the UTF-8 XML document. Pure; the XML is
// assumed already validated by GenerateXML.
func NewSphericalBox(xmlMetadata string) *mp4.Box {
	contents := make([]byte, 0, len(SignatureUUID)+len(xmlMetadata))
	contents = append(contents, SignatureUUID[:]...)
	contents = append(contents, xmlMetadata...)
	return &mp4.Box{
		Name:        mp4.TagUUID,
		HeaderSize:  8,
		ContentSize: int64(len(contents)),
		Contents:    contents,
	}
}

// isVideoHandler reports whether the given hdlr box declares the video
// handler type. The handler type field sits 8 bytes past the box content
// start (version/flags plus pre_defined); that fixed offset is specific to
// the hdlr layout. The bytes are read from the backing stream because hdlr
// contents are not materialized on load.
func isVideoHandler(r io.ReadSeeker, hdlr *mp4.Box) (bool, error) {
	if _, err := r.Seek(hdlr.ContentStart()+8, io.SeekStart); err != nil {
		return false, fmt.Errorf("seeking handler type: %w", err)
	}
	var handlerType [4]byte
	if _, err := io.ReadFull(r, handlerType[:]); err != nil {
		return false, fmt.Errorf("reading handler type: %w", err)
	}
	return bytes.Equal(handlerType[:], mp4.TrakTypeVide), nil
}

// IsVideoTrack reports whether the trak box carries a video elementary
// stream, by checking the handler type of each mdia/hdlr chain until one
// declares video. The check re-scans on every call; nothing is cached.
func IsVideoTrack(r io.ReadSeeker, trak *mp4.Box) (bool, error) {
	for _, sub := range trak.Children {
		if sub.Name != mp4.TagMdia {
			continue
		}
		for _, mdiaSub := range sub.Children {
			if mdiaSub.Name != mp4.TagHdlr {
				continue
			}
			video, err := isVideoHandler(r, mdiaSub)
			if err != nil || video {
				return video, err
			}
		}
	}
	return false, nil
}

// InjectSpherical adds a spherical metadata uuid box to every video track
// of a loaded container. Existing uuid boxes are removed from all tracks
// first — including non-video tracks, so stale or foreign extension
// metadata is cleared everywhere — which makes reinjection replace rather
// than duplicate. A rejected append aborts the whole operation: a
// half-updated tree must not be persisted.
//
// The container is resized before returning; saving it is the caller's
// responsibility.
func InjectSpherical(container *mp4.Container, r io.ReadSeeker, xmlMetadata string) error {
	moov := container.MoovBox()
	if moov == nil {
		return mp4.ErrMoovNotFound
	}

	trackNum := 0
	for _, element := range moov.Children {
		if element.Name != mp4.TagTrak {
			continue
		}
		trackNum++
		element.RemoveChildren(mp4.TagUUID)

		video, err := IsVideoTrack(r, element)
		if err != nil {
			return fmt.Errorf("checking track %d handler: %w", trackNum-1, err)
		}
		if !video {
			continue
		}
		if !element.AddChild(NewSphericalBox(xmlMetadata)) {
			return fmt.Errorf("%w: track %d", ErrBoxInsert, trackNum-1)
		}
		logrus.WithFields(logrus.Fields{
			"function": "InjectSpherical",
			"track":    trackNum - 1,
			"bytes":    len(xmlMetadata),
		}).Info("Added spherical metadata box to video track")
	}

	container.Resize()
	return nil
}
