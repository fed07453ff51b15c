package mp4

// Box tags referenced by the loader and its callers.
const (
	TagFtyp = "ftyp"
	TagMoov = "moov"
	TagTrak = "trak"
	TagMdia = "mdia"
	TagMinf = "minf"
	TagStbl = "stbl"
	TagHdlr = "hdlr"
	TagUdta = "udta"
	TagMdat = "mdat"
	TagUUID = "uuid"
)

// TrakTypeVide is the 4-byte handler type code declared by the hdlr box of
// a video elementary-stream track.
var TrakTypeVide = []byte("vide")

// containerTags lists the box types whose contents are parsed as child
// boxes rather than opaque bytes. Everything else is treated as a leaf.
var containerTags = map[string]bool{
	TagMoov: true,
	TagTrak: true,
	TagMdia: true,
	TagMinf: true,
	TagStbl: true,
	TagUdta: true,
	"edts":  true,
	"dinf":  true,
	"mvex":  true,
	"moof":  true,
	"traf":  true,
}

// IsContainer reports whether boxes of the given tag hold child boxes.
func IsContainer(tag string) bool {
	return containerTags[tag]
}
