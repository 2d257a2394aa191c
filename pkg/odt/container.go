// Package odt edits OpenDocument text files in place of their XML content
// stream: it locates element spans by linear scanning and splices computed
// markup over them, without building a document tree.
package odt

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
)

// ContentPart is the package entry holding the document's content stream.
const ContentPart = "content.xml"

// mimetypePart must be the first entry of an ODF package and stored
// uncompressed so consumers can sniff the type without inflating.
const mimetypePart = "mimetype"

// defaultMimetype identifies an OpenDocument text file.
const defaultMimetype = "application/vnd.oasis.opendocument.text"

// Part is one entry of the document package.
type Part struct {
	Name string
	Data []byte
}

// Package holds every entry of an unpacked ODT container in archive order.
// Only the content stream is ever rewritten; all other parts round-trip
// untouched.
type Package struct {
	parts []Part
	index map[string]int
}

// ReadPackage opens an ODT file and unpacks every part into memory.
// A missing or unreadable container is a hard failure that aborts the load.
func ReadPackage(path string) (*Package, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read package: %w", err)
	}
	return NewPackage(bytes.NewReader(raw), int64(len(raw)))
}

// NewPackage unpacks an ODT container from an in-memory reader.
func NewPackage(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}

	pkg := &Package{index: make(map[string]int, len(zr.File))}
	for _, file := range zr.File {
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open part %s: %w", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", file.Name, err)
		}
		pkg.index[file.Name] = len(pkg.parts)
		pkg.parts = append(pkg.parts, Part{Name: file.Name, Data: data})
	}

	if _, ok := pkg.index[ContentPart]; !ok {
		return nil, fmt.Errorf("not a valid ODT package: missing %s", ContentPart)
	}
	return pkg, nil
}

// Part returns the raw bytes of the named entry.
func (p *Package) Part(name string) ([]byte, bool) {
	i, ok := p.index[name]
	if !ok {
		return nil, false
	}
	return p.parts[i].Data, true
}

// SetPart replaces the named entry, or appends it when absent.
func (p *Package) SetPart(name string, data []byte) {
	if i, ok := p.index[name]; ok {
		p.parts[i].Data = data
		return
	}
	p.index[name] = len(p.parts)
	p.parts = append(p.parts, Part{Name: name, Data: data})
}

// PartNames lists every entry in archive order.
func (p *Package) PartNames() []string {
	names := make([]string, len(p.parts))
	for i, part := range p.parts {
		names[i] = part.Name
	}
	return names
}

// Bytes repacks the container. The mimetype entry comes first and is
// stored uncompressed, as ODF requires; everything else is deflated in the
// order it was read.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	mime := []byte(defaultMimetype)
	if data, ok := p.Part(mimetypePart); ok {
		mime = data
	}
	w, err := zw.CreateHeader(&zip.FileHeader{Name: mimetypePart, Method: zip.Store})
	if err != nil {
		return nil, fmt.Errorf("create mimetype entry: %w", err)
	}
	if _, err := w.Write(mime); err != nil {
		return nil, fmt.Errorf("write mimetype entry: %w", err)
	}

	for _, part := range p.parts {
		if part.Name == mimetypePart {
			continue
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: part.Name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("create part %s: %w", part.Name, err)
		}
		if _, err := w.Write(part.Data); err != nil {
			return nil, fmt.Errorf("write part %s: %w", part.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close container: %w", err)
	}
	return buf.Bytes(), nil
}
