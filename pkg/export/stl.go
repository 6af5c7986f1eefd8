// Package export writes build results to disk: binary STL for
// printing and a shaded PNG preview for eyeballing the result.
// Nothing in the build pipeline writes files; export is strictly
// opt-in.
package export

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/halver/marblebox/pkg/kernel"
)

// stlHeader defines the binary STL file header.
type stlHeader struct {
	_     [80]uint8 // header text, unused
	Count uint32    // number of triangles
}

// stlTriangle is the 50-byte binary STL triangle record.
type stlTriangle struct {
	Normal                    [3]float32
	Vertex1, Vertex2, Vertex3 [3]float32
	AttrByteCount             uint16
}

// SaveSTL writes the mesh to path in binary STL format.
func SaveSTL(path string, m *kernel.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export stl: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteSTL(w, m); err != nil {
		return fmt.Errorf("export stl: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("export stl: %w", err)
	}
	return nil
}

// WriteSTL writes the mesh to w in binary STL format.
func WriteSTL(w io.Writer, m *kernel.Mesh) error {
	if m.IsEmpty() {
		return errors.New("empty mesh")
	}
	nt := m.TriangleCount()
	header := stlHeader{Count: uint32(nt)}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}

	var d stlTriangle
	for i := 0; i < nt; i++ {
		a, b, c := m.Triangle(i)
		// Per-face normal: the backends emit one normal per corner,
		// identical across the face; the first corner's suffices.
		ni := m.Indices[i*3] * 3
		copy(d.Normal[:], m.Normals[ni:ni+3])
		d.Vertex1 = a
		d.Vertex2 = b
		d.Vertex3 = c
		if err := binary.Write(w, binary.LittleEndian, &d); err != nil {
			return err
		}
	}
	return nil
}
