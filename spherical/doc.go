// Package spherical encodes, decodes and places Spherical Video V1
// metadata inside MP4 box trees.
//
// The metadata is an RDF/XML document carried in a uuid extension box on
// each video track, identified by a fixed 16-byte signature. This package
// owns the format-specific correctness of that scheme: the XML vocabulary
// and its geometric validation, the signature and box layout, and the rules
// for locating video tracks and replacing stale metadata.
//
// # Generating and Injecting
//
//	metadata, err := spherical.GenerateXML(spherical.StereoTopBottom, nil)
//	if err != nil {
//	    return err
//	}
//	container, err := mp4.Load(in)
//	if err != nil {
//	    return err
//	}
//	if err := spherical.InjectSpherical(container, in, metadata); err != nil {
//	    return err
//	}
//	err = container.Save(in, out)
//
// # Extracting
//
//	records := spherical.ParseSphericalMpeg4(container, in, console)
//	for track, fields := range records {
//	    fmt.Println(track, fields["ProjectionType"])
//	}
//
// Generation is strict: crop geometry is validated before any XML is
// produced. Parsing is lenient: a document missing its rdf namespace
// declaration is repaired once and retried, and unknown child elements are
// reported to the console and discarded.
package spherical
