// Package mp4test builds small in-memory MP4 fixtures for deterministic
// tests. The generated files carry a valid box structure (ftyp, moov with
// one trak/mdia/hdlr chain per requested handler, and a short mdat) but no
// decodable media.
package mp4test

import (
	"bytes"
	"encoding/binary"
)

// FileWithHandlers returns the bytes of a minimal MP4 file with one track
// per handler code. Handler codes are 4-byte strings such as "vide" or
// "soun" and land at the hdlr layout offset real muxers use, so track type
// detection behaves exactly as it does on production files.
func FileWithHandlers(handlers ...string) []byte {
	var moovPayload bytes.Buffer
	moovPayload.Write(box("mvhd", make([]byte, 100)))
	for _, handler := range handlers {
		hdlr := box(
			"hdlr",
			hdlrPayload(handler),
		)
		mdia := box("mdia", hdlr)
		moovPayload.Write(box("trak", mdia))
	}

	var file bytes.Buffer
	file.Write(box("ftyp", []byte("isom\x00\x00\x02\x00isomiso2")))
	file.Write(box("moov", moovPayload.Bytes()))
	file.Write(box("mdat", []byte("\x00\x00\x00\x00")))
	return file.Bytes()
}

// hdlrPayload lays out a version-0 hdlr box payload: version/flags,
// pre_defined, handler_type, three reserved words and an empty name. The
// handler type therefore sits 8 bytes into the payload.
func hdlrPayload(handler string) []byte {
	payload := make([]byte, 25)
	copy(payload[8:12], handler)
	return payload
}

// box marshals a compact-header box around the concatenated payload parts.
func box(name string, payload ...[]byte) []byte {
	size := 8
	for _, part := range payload {
		size += len(part)
	}
	out := make([]byte, 0, size)
	var header [8]byte
	binary.BigEndian.PutUint32(header[0:4], uint32(size))
	copy(header[4:8], name)
	out = append(out, header[:]...)
	for _, part := range payload {
		out = append(out, part...)
	}
	return out
}
