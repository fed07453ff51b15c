// Package mp4 implements a minimal ISO Base Media File Format (ISO BMFF)
// box-tree model for in-place metadata editing.
//
// It is not a general MP4 demuxer. The loader indexes the top-level boxes of
// a file and recurses only into container boxes (moov, trak, mdia and
// friends), leaving leaf contents on disk until a caller materializes or
// replaces them. This keeps memory flat regardless of mdat size while still
// allowing structural edits inside the movie box.
//
// # Core Types
//
//   - [Box]: a typed, sized node; either a container holding children or a
//     leaf backed by the source stream or an in-memory buffer
//   - [Container]: the top-level file, an ordered sequence of boxes
//
// # Editing Workflow
//
// Load a file, mutate the tree, resize, then save to a distinct output:
//
//	container, err := mp4.Load(in)
//	if err != nil {
//	    return err
//	}
//	trak.AddChild(metadataBox)
//	container.Resize()
//	err = container.Save(in, out)
//
// Mutating a container's children invalidates the cached sizes of every
// ancestor; [Container.Resize] must run before [Container.Save] or the
// written box lengths will not match the written bytes.
package mp4
