package spherical

import (
	"encoding/xml"

	"github.com/google/uuid"
)

// SignatureUUID identifies spherical metadata uuid boxes written by this
// package among unrelated uuid extension boxes.
var SignatureUUID = uuid.MustParse("ffcc8263-f855-4a93-8814-587a02521fdd")

// Recognized stereo mode values. Anything else is treated as monoscopic.
const (
	StereoTopBottom = "top-bottom"
	StereoLeftRight = "left-right"
)

const (
	sphericalNamespace = "http://ns.google.com/videos/1.0/spherical/"
	rdfNamespace       = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// rdfPrefixAttr is spliced into documents whose root element uses the
	// rdf prefix without declaring it.
	rdfPrefixAttr = ` xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" `

	rootOpenTag = "<rdf:SphericalVideo"

	xmlHeader = `<?xml version="1.0"?>` +
		"<rdf:SphericalVideo\n" +
		"xmlns:rdf=\"http://www.w3.org/1999/02/22-rdf-syntax-ns#\"\n" +
		"xmlns:GSpherical=\"http://ns.google.com/videos/1.0/spherical/\">"

	xmlBody = "<GSpherical:Spherical>true</GSpherical:Spherical>" +
		"<GSpherical:Stitched>true</GSpherical:Stitched>" +
		"<GSpherical:StitchingSoftware>" +
		"Spherical Metadata Tool" +
		"</GSpherical:StitchingSoftware>" +
		"<GSpherical:ProjectionType>equirectangular</GSpherical:ProjectionType>"

	xmlStereoTopBottom = "<GSpherical:StereoMode>top-bottom</GSpherical:StereoMode>"
	xmlStereoLeftRight = "<GSpherical:StereoMode>left-right</GSpherical:StereoMode>"

	// Crop field order matches the order of the crop tuple.
	xmlCropFormat = "<GSpherical:CroppedAreaImageWidthPixels>%d" +
		"</GSpherical:CroppedAreaImageWidthPixels>" +
		"<GSpherical:CroppedAreaImageHeightPixels>%d" +
		"</GSpherical:CroppedAreaImageHeightPixels>" +
		"<GSpherical:FullPanoWidthPixels>%d</GSpherical:FullPanoWidthPixels>" +
		"<GSpherical:FullPanoHeightPixels>%d</GSpherical:FullPanoHeightPixels>" +
		"<GSpherical:CroppedAreaLeftPixels>%d</GSpherical:CroppedAreaLeftPixels>" +
		"<GSpherical:CroppedAreaTopPixels>%d</GSpherical:CroppedAreaTopPixels>"

	xmlFooter = "</rdf:SphericalVideo>"
)

// sphericalTagList is the fixed vocabulary of recognized metadata fields, in
// the order they are emitted.
var sphericalTagList = []string{
	"Spherical",
	"Stitched",
	"StitchingSoftware",
	"ProjectionType",
	"SourceCount",
	"StereoMode",
	"InitialViewHeadingDegrees",
	"InitialViewPitchDegrees",
	"InitialViewRollDegrees",
	"Timestamp",
	"CroppedAreaImageWidthPixels",
	"CroppedAreaImageHeightPixels",
	"FullPanoWidthPixels",
	"FullPanoHeightPixels",
	"CroppedAreaLeftPixels",
	"CroppedAreaTopPixels",
}

// sphericalTags maps a namespaced element name to its field name. Built
// once at init and never mutated afterwards.
var sphericalTags = make(map[xml.Name]string, len(sphericalTagList))

func init() {
	for _, tag := range sphericalTagList {
		sphericalTags[xml.Name{Space: sphericalNamespace, Local: tag}] = tag
	}
}
