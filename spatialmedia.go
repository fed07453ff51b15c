package spatialmedia

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/spatialmedia/mp4"
	"github.com/opd-ai/spatialmedia/spherical"
)

// Console is the diagnostics sink handed through to the spherical codec.
// See spherical.Console.
type Console = spherical.Console

var (
	// ErrSamePath indicates injection was asked to write over its own
	// input. Output is always a distinct file because box sizes change.
	ErrSamePath = errors.New("input and output cannot be the same")

	// ErrUnsupportedFile indicates a path without the .mp4 extension.
	ErrUnsupportedFile = errors.New("unknown file type")
)

// GenerateSphericalXML builds the metadata document consumed by
// InjectFileMetadata. See spherical.GenerateXML for the stereo mode and
// crop semantics.
func GenerateSphericalXML(stereoMode string, crop *spherical.Crop) (string, error) {
	return spherical.GenerateXML(stereoMode, crop)
}

// ParseFileMetadata extracts the spherical metadata records of every track
// in the file, keyed by track label. Tracks whose metadata fails to parse
// map to a nil record; tracks without spherical metadata are absent.
func ParseFileMetadata(path string, console Console) (map[string]map[string]string, error) {
	infile, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "ParseFileMetadata",
		"path":     infile,
	}).Info("Extracting spherical metadata")

	in, err := os.Open(infile)
	if err != nil {
		console.Emit("Error: %s does not exist or we do not have permission", infile)
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer in.Close()

	console.Emit("Processing: %s", infile)
	if strings.ToLower(filepath.Ext(infile)) != ".mp4" {
		console.Emit("Unknown file type")
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(infile))
	}

	container, err := mp4.Load(in)
	if err != nil {
		console.Emit("Error, file could not be opened.")
		return nil, fmt.Errorf("loading box structure of %s: %w", path, err)
	}
	console.Emit("Loaded file settings")

	return spherical.ParseSphericalMpeg4(container, in, console), nil
}

// InjectFileMetadata writes a copy of src to dst with the given spherical
// metadata document placed on every video track, replacing any metadata
// already present. The parsed result is echoed to the console before
// saving, mirroring what a subsequent ParseFileMetadata would report.
func InjectFileMetadata(src, dst, xmlMetadata string, console Console) error {
	infile, err := filepath.Abs(src)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", src, err)
	}
	outfile, err := filepath.Abs(dst)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dst, err)
	}
	if infile == outfile {
		return ErrSamePath
	}

	logrus.WithFields(logrus.Fields{
		"function": "InjectFileMetadata",
		"src":      infile,
		"dst":      outfile,
	}).Info("Injecting spherical metadata")

	in, err := os.Open(infile)
	if err != nil {
		console.Emit("Error: %s does not exist or we do not have permission", infile)
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	console.Emit("Processing: %s", infile)
	if strings.ToLower(filepath.Ext(infile)) != ".mp4" {
		console.Emit("Unknown file type")
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(infile))
	}

	container, err := mp4.Load(in)
	if err != nil {
		console.Emit("Error file could not be opened.")
		return fmt.Errorf("loading box structure of %s: %w", src, err)
	}

	if err := spherical.InjectSpherical(container, in, xmlMetadata); err != nil {
		console.Emit("Error failed to insert spherical data")
		return err
	}

	console.Emit("Saved file settings")
	spherical.ParseSphericalMpeg4(container, in, console)

	out, err := os.Create(outfile)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if err := container.Save(in, out); err != nil {
		out.Close()
		return fmt.Errorf("saving %s: %w", dst, err)
	}
	return out.Close()
}
