// Package spatialmedia examines and injects spherical (360°) video
// metadata in MP4 files, following the Spherical Video V1 RDF/XML schema.
//
// The package is the file-level facade over two subsystems: the mp4 box
// model (parsing, resizing and rewriting the container structure) and the
// spherical codec (generating, validating, placing and extracting the
// metadata document). Video pipelines use it to mark equirectangular,
// stereo or cropped-panorama content so players render it correctly.
//
// # Injecting Metadata
//
// Generate a metadata document and write a tagged copy of a file:
//
//	xmlMetadata, err := spatialmedia.GenerateSphericalXML(spherical.StereoTopBottom, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	console := spatialmedia.Console(func(msg string) { fmt.Println(msg) })
//	err = spatialmedia.InjectFileMetadata("in.mp4", "out.mp4", xmlMetadata, console)
//
// Injection never happens in place: box sizes change, so the destination
// must be a different path than the source.
//
// # Examining Metadata
//
// Extract per-track metadata records:
//
//	records, err := spatialmedia.ParseFileMetadata("video.mp4", console)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for track, fields := range records {
//	    fmt.Println(track, fields)
//	}
//
// The Console sink receives the human-readable progress lines the original
// command-line tool printed ("Found:", "Unknown:", parse warnings); pass
// nil to discard them. Structured logging goes through logrus.
package spatialmedia
