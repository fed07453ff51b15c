package spherical

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectConsole returns a Console that appends each line to lines.
func collectConsole(lines *[]string) Console {
	return func(msg string) {
		*lines = append(*lines, msg)
	}
}

func TestGenerateXMLAlwaysEmitsBaseFields(t *testing.T) {
	xmlMetadata, err := GenerateXML("", nil)
	require.NoError(t, err)

	fields, err := ParseXML([]byte(xmlMetadata), nil)
	require.NoError(t, err)

	assert.Equal(t, "true", fields["Spherical"])
	assert.Equal(t, "true", fields["Stitched"])
	assert.Equal(t, "Spherical Metadata Tool", fields["StitchingSoftware"])
	assert.Equal(t, "equirectangular", fields["ProjectionType"])
	assert.NotContains(t, fields, "StereoMode")
	assert.NotContains(t, fields, "CroppedAreaImageWidthPixels")
}

func TestGenerateParseRoundTrip(t *testing.T) {
	crop := &Crop{
		CroppedWidth:  4000,
		CroppedHeight: 2000,
		FullWidth:     8000,
		FullHeight:    4000,
		Left:          2000,
		Top:           1000,
	}

	tests := []struct {
		name   string
		stereo string
		crop   *Crop
	}{
		{"mono no crop", "", nil},
		{"top-bottom", StereoTopBottom, nil},
		{"left-right", StereoLeftRight, nil},
		{"crop only", "", crop},
		{"stereo and crop", StereoTopBottom, crop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xmlMetadata, err := GenerateXML(tt.stereo, tt.crop)
			require.NoError(t, err)

			fields, err := ParseXML([]byte(xmlMetadata), nil)
			require.NoError(t, err)

			if tt.stereo != "" {
				assert.Equal(t, tt.stereo, fields["StereoMode"])
			} else {
				assert.NotContains(t, fields, "StereoMode")
			}
			if tt.crop != nil {
				assert.Equal(t, "4000", fields["CroppedAreaImageWidthPixels"])
				assert.Equal(t, "2000", fields["CroppedAreaImageHeightPixels"])
				assert.Equal(t, "8000", fields["FullPanoWidthPixels"])
				assert.Equal(t, "4000", fields["FullPanoHeightPixels"])
				assert.Equal(t, "2000", fields["CroppedAreaLeftPixels"])
				assert.Equal(t, "1000", fields["CroppedAreaTopPixels"])
			} else {
				assert.NotContains(t, fields, "FullPanoWidthPixels")
			}
		})
	}
}

func TestGenerateXMLIgnoresUnknownStereoMode(t *testing.T) {
	xmlMetadata, err := GenerateXML("sideways", nil)
	if err != nil {
		t.Fatalf("GenerateXML failed: %v", err)
	}
	if strings.Contains(xmlMetadata, "StereoMode") {
		t.Errorf("unrecognized stereo mode emitted a StereoMode element: %s", xmlMetadata)
	}
}

func TestGenerateXMLRejectsInvalidCrop(t *testing.T) {
	xmlMetadata, err := GenerateXML("", &Crop{
		CroppedWidth:  8001,
		CroppedHeight: 2000,
		FullWidth:     8000,
		FullHeight:    4000,
	})
	if !errors.Is(err, ErrInvalidCrop) {
		t.Fatalf("want ErrInvalidCrop, got %v", err)
	}
	if xmlMetadata != "" {
		t.Errorf("partial XML returned on validation failure: %q", xmlMetadata)
	}
}

func TestParseXMLMissingRDFPrefixIsRepaired(t *testing.T) {
	contents := `<?xml version="1.0"?>` +
		`<rdf:SphericalVideo xmlns:GSpherical="http://ns.google.com/videos/1.0/spherical/">` +
		`<GSpherical:Spherical>true</GSpherical:Spherical>` +
		`</rdf:SphericalVideo>`

	var lines []string
	fields, err := ParseXML([]byte(contents), collectConsole(&lines))
	require.NoError(t, err)
	assert.Equal(t, "true", fields["Spherical"])

	warned := false
	for _, line := range lines {
		if strings.Contains(line, "missing rdf prefix") {
			warned = true
		}
	}
	assert.True(t, warned, "expected a missing-prefix warning, got %v", lines)
}

func TestParseXMLGarbledDocument(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"not xml", "definitely not xml"},
		{"mismatched tags", "<foo>bar</baz>"},
		{"wrong root", "<video>spherical</video>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lines []string
			fields, err := ParseXML([]byte(tt.contents), collectConsole(&lines))
			if !errors.Is(err, ErrMalformedXML) {
				t.Fatalf("want ErrMalformedXML, got %v", err)
			}
			if fields != nil {
				t.Errorf("fields returned for garbled document: %v", fields)
			}
			if len(lines) == 0 {
				t.Error("no parse diagnostics were emitted")
			}
		})
	}
}

func TestParseXMLUnknownTagsDiscarded(t *testing.T) {
	contents := xmlHeader +
		"<GSpherical:Spherical>true</GSpherical:Spherical>" +
		"<GSpherical:Foo>bar</GSpherical:Foo>" +
		xmlFooter

	var lines []string
	fields, err := ParseXML([]byte(contents), collectConsole(&lines))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"Spherical": "true"}, fields)

	var unknown string
	for _, line := range lines {
		if strings.Contains(line, "Unknown:") {
			unknown = line
		}
	}
	assert.Contains(t, unknown, "Foo = bar")
}

func TestParseXMLDuplicateTagLastWins(t *testing.T) {
	contents := xmlHeader +
		"<GSpherical:StereoMode>top-bottom</GSpherical:StereoMode>" +
		"<GSpherical:StereoMode>left-right</GSpherical:StereoMode>" +
		xmlFooter

	fields, err := ParseXML([]byte(contents), nil)
	require.NoError(t, err)
	assert.Equal(t, "left-right", fields["StereoMode"])
}
