package mp4

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/opd-ai/spatialmedia/mp4/mp4test"
)

func TestLoadIndexesStructure(t *testing.T) {
	data := mp4test.FileWithHandlers("vide")
	container, err := Load(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var names []string
	for _, box := range container.Children {
		names = append(names, box.Name)
	}
	want := []string{TagFtyp, TagMoov, TagMdat}
	if len(names) != len(want) {
		t.Fatalf("top-level boxes = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("box %d = %q, want %q", i, names[i], want[i])
		}
	}

	moov := container.MoovBox()
	if moov == nil {
		t.Fatal("MoovBox returned nil")
	}
	if len(moov.Children) != 2 {
		t.Fatalf("moov children = %d, want 2 (mvhd, trak)", len(moov.Children))
	}

	trak := moov.Children[1]
	if trak.Name != TagTrak {
		t.Fatalf("second moov child = %q, want trak", trak.Name)
	}
	hdlr := trak.Children[0].Children[0]
	if hdlr.Name != TagHdlr {
		t.Fatalf("trak/mdia child = %q, want hdlr", hdlr.Name)
	}
	if hdlr.Contents != nil {
		t.Error("leaf contents materialized on load")
	}
	if hdlr.ContentStart() != hdlr.Position+hdlr.HeaderSize {
		t.Error("ContentStart does not follow the header")
	}

	// The handler type must be readable at the fixed hdlr offset.
	handler := data[hdlr.ContentStart()+8 : hdlr.ContentStart()+12]
	if !bytes.Equal(handler, TrakTypeVide) {
		t.Errorf("handler type at offset = %q, want vide", handler)
	}
}

func TestLoadRejectsStreamWithoutMoov(t *testing.T) {
	var file bytes.Buffer
	header := make([]byte, 8)
	binary.BigEndian.PutUint32(header[0:4], 16)
	copy(header[4:8], TagFtyp)
	file.Write(header)
	file.Write([]byte("isomiso2"))

	if _, err := Load(bytes.NewReader(file.Bytes())); !errors.Is(err, ErrMoovNotFound) {
		t.Errorf("Load = %v, want ErrMoovNotFound", err)
	}
}

func TestLoadRejectsTruncatedBox(t *testing.T) {
	data := mp4test.FileWithHandlers("vide")
	// Inflate the declared size of the first box beyond the file end.
	binary.BigEndian.PutUint32(data[0:4], uint32(len(data)+100))

	if _, err := Load(bytes.NewReader(data)); !errors.Is(err, ErrTruncatedBox) {
		t.Errorf("Load = %v, want ErrTruncatedBox", err)
	}
}

func TestLoadLargesizeHeader(t *testing.T) {
	data := mp4test.FileWithHandlers("vide")

	// Append a free box using the 64-bit largesize form.
	payload := []byte("padding!")
	header := make([]byte, 16)
	binary.BigEndian.PutUint32(header[0:4], 1)
	copy(header[4:8], "free")
	binary.BigEndian.PutUint64(header[8:16], uint64(16+len(payload)))
	data = append(data, header...)
	data = append(data, payload...)

	container, err := Load(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	free := container.Children[len(container.Children)-1]
	if free.Name != "free" {
		t.Fatalf("last box = %q, want free", free.Name)
	}
	if free.HeaderSize != 16 {
		t.Errorf("header size = %d, want 16", free.HeaderSize)
	}
	if free.ContentSize != int64(len(payload)) {
		t.Errorf("content size = %d, want %d", free.ContentSize, len(payload))
	}

	// Largesize boxes keep their header width on save.
	var out bytes.Buffer
	if err := container.Save(bytes.NewReader(data), &out); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Error("unmodified save did not reproduce the input bytes")
	}
}

func TestAddChildRejectsLeaf(t *testing.T) {
	leaf := &Box{Name: TagHdlr}
	if leaf.AddChild(&Box{Name: TagUUID}) {
		t.Error("AddChild on a leaf box must report false")
	}
	if len(leaf.Children) != 0 {
		t.Error("leaf box mutated by rejected AddChild")
	}
}

func TestFilterBoxes(t *testing.T) {
	boxes := []*Box{
		{Name: TagUUID},
		{Name: TagMdia},
		{Name: TagUUID},
	}
	kept := FilterBoxes(boxes, TagUUID)
	if len(kept) != 1 || kept[0].Name != TagMdia {
		t.Errorf("FilterBoxes kept %v", kept)
	}
	if len(boxes) != 3 {
		t.Error("FilterBoxes modified its input")
	}
}

func TestRemoveChildrenThenResize(t *testing.T) {
	data := mp4test.FileWithHandlers("vide")
	container, err := Load(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	moov := container.MoovBox()
	trak := moov.Children[1]
	sizeBefore := moov.Size()

	extra := &Box{Name: TagUUID, HeaderSize: 8, Contents: []byte("0123456789abcdef"), ContentSize: 16}
	if !trak.AddChild(extra) {
		t.Fatal("AddChild failed on trak")
	}
	container.Resize()
	if got := moov.Size(); got != sizeBefore+extra.Size() {
		t.Errorf("moov size after add = %d, want %d", got, sizeBefore+extra.Size())
	}

	trak.RemoveChildren(TagUUID)
	container.Resize()
	if got := moov.Size(); got != sizeBefore {
		t.Errorf("moov size after remove = %d, want %d", got, sizeBefore)
	}
}
