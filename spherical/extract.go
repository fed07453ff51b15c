package spherical

import (
	"bytes"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/spatialmedia/mp4"
)

// ParseSphericalMpeg4 returns the spherical metadata records of a loaded
// container, keyed by track label ("Track 0", "Track 1", ...). Only tracks
// carrying a uuid box with the spherical signature appear in the result; a
// track whose metadata XML cannot be parsed maps to a nil record, and
// extraction continues with the remaining tracks.
func ParseSphericalMpeg4(container *mp4.Container, r io.ReadSeeker, console Console) map[string]map[string]string {
	records := make(map[string]map[string]string)
	moov := container.MoovBox()
	if moov == nil {
		return records
	}

	trackNum := 0
	for _, element := range moov.Children {
		if element.Name != mp4.TagTrak {
			continue
		}
		trackName := fmt.Sprintf("Track %d", trackNum)
		console.Emit("\t%s", trackName)
		trackNum++

		for _, sub := range element.Children {
			if sub.Name != mp4.TagUUID {
				continue
			}
			id, contents, err := readUUIDPayload(sub, r)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"function": "ParseSphericalMpeg4",
					"track":    trackName,
					"error":    err,
				}).Warn("Skipping unreadable uuid box")
				continue
			}
			if !bytes.Equal(id, SignatureUUID[:]) {
				continue
			}
			fields, err := ParseXML(contents, console)
			if err != nil {
				records[trackName] = nil
				continue
			}
			records[trackName] = fields
		}
	}
	return records
}

// readUUIDPayload splits a uuid box payload into its 16-byte signature and
// trailing contents, reading from the backing stream when the box was never
// materialized.
func readUUIDPayload(box *mp4.Box, r io.ReadSeeker) (id, contents []byte, err error) {
	payload := box.Contents
	if payload == nil {
		if _, err := r.Seek(box.ContentStart(), io.SeekStart); err != nil {
			return nil, nil, fmt.Errorf("seeking uuid contents: %w", err)
		}
		payload = make([]byte, box.ContentSize)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, nil, fmt.Errorf("reading uuid contents: %w", err)
		}
	}
	if len(payload) < 16 {
		return nil, nil, fmt.Errorf("uuid box too short: %d bytes", len(payload))
	}
	return payload[:16], payload[16:], nil
}
