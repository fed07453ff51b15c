package spherical

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrMalformedXML indicates metadata XML that could not be parsed even
// after namespace repair.
var ErrMalformedXML = errors.New("malformed spherical metadata XML")

// GenerateXML produces the spherical metadata document injected into video
// tracks. The document always declares equirectangular stitched content.
//
// stereoMode selects an optional StereoMode element; StereoTopBottom and
// StereoLeftRight are recognized, any other value (including "") emits no
// StereoMode element. A nil crop omits the crop fields; a non-nil crop is
// validated first and no XML is returned when validation fails.
func GenerateXML(stereoMode string, crop *Crop) (string, error) {
	var additional strings.Builder

	switch stereoMode {
	case StereoTopBottom:
		additional.WriteString(xmlStereoTopBottom)
	case StereoLeftRight:
		additional.WriteString(xmlStereoLeftRight)
	}

	if crop != nil {
		if err := crop.Validate(); err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "GenerateXML",
				"error":    err,
			}).Warn("Rejecting crop parameters")
			return "", err
		}
		fmt.Fprintf(&additional, xmlCropFormat,
			crop.CroppedWidth, crop.CroppedHeight,
			crop.FullWidth, crop.FullHeight,
			crop.Left, crop.Top)
	}

	return xmlHeader + xmlBody + additional.String() + xmlFooter, nil
}

// xmlElement is the decoded root element with its direct children.
type xmlElement struct {
	XMLName  xml.Name
	Children []xmlChild `xml:",any"`
}

// xmlChild is one direct child element: a namespaced name and its text.
type xmlChild struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// ParseXML decodes a spherical metadata document into a field map keyed by
// tag local name. Recognized tags are recorded ("Found" console line, last
// duplicate wins); unknown children are reported ("Unknown" line) and
// discarded.
//
// A document whose root lacks the rdf namespace declaration is repaired
// once by splicing the declaration into the opening tag and reparsed. A
// document that still fails is reported to the console along with its
// contents and returned as an error.
func ParseXML(contents []byte, console Console) (map[string]string, error) {
	root, err := decodeRoot(contents)
	if err != nil || root.XMLName.Space != rdfNamespace {
		repaired := repairRDFPrefix(contents)
		root, err = decodeRoot(repaired)
		if err != nil || root.XMLName.Space != rdfNamespace {
			if err == nil {
				err = fmt.Errorf("unexpected root element %q", root.XMLName.Local)
			}
			console.Emit("\t\tParser Error on XML")
			console.Emit("\t\t%v", err)
			console.Emit("\t\t%s", contents)
			return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
		}
		console.Emit("\t\tWarning missing rdf prefix:%s", rdfPrefixAttr)
	}

	fields := make(map[string]string)
	for _, child := range root.Children {
		if name, ok := sphericalTags[child.XMLName]; ok {
			console.Emit("\t\tFound: %s = %s", name, child.Value)
			fields[name] = child.Value
			continue
		}
		name := child.XMLName.Local
		if child.XMLName.Space != "" && child.XMLName.Space != sphericalNamespace {
			name = child.XMLName.Space + ":" + child.XMLName.Local
		}
		console.Emit("\t\tUnknown: %s = %s", name, child.Value)
	}
	return fields, nil
}

func decodeRoot(contents []byte) (*xmlElement, error) {
	root := &xmlElement{}
	if err := xml.Unmarshal(contents, root); err != nil {
		return nil, err
	}
	return root, nil
}

// repairRDFPrefix splices the rdf namespace declaration into the root
// opening tag. Documents without the expected root are returned unchanged,
// so the retry fails the same way the first parse did.
func repairRDFPrefix(contents []byte) []byte {
	index := strings.Index(string(contents), rootOpenTag)
	if index < 0 {
		return contents
	}
	index += len(rootOpenTag)
	repaired := make([]byte, 0, len(contents)+len(rdfPrefixAttr))
	repaired = append(repaired, contents[:index]...)
	repaired = append(repaired, rdfPrefixAttr...)
	repaired = append(repaired, contents[index:]...)
	return repaired
}
