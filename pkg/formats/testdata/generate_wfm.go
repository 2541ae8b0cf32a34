//go:build ignore

// This program generates a test WFM file for unit tests.
// Run with: go run generate_wfm.go
package main

import (
	"bytes"
	"encoding/binary"
	"os"
)

func main() {
	// One triangle with normals, no texcoords
	var buf bytes.Buffer

	// Header
	buf.WriteString("WFMD")
	buf.WriteByte(1) // major
	buf.WriteByte(0) // minor
	buf.WriteByte(1) // flags: normals
	buf.WriteByte(0) // reserved
	name := make([]byte, 64)
	copy(name, "triangle")
	buf.Write(name)
	binary.Write(&buf, binary.LittleEndian, uint32(3)) // vertex count

	// Positions
	binary.Write(&buf, binary.LittleEndian, []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	})
	// Indices
	binary.Write(&buf, binary.LittleEndian, []uint32{0, 1, 2})
	// Corner markers: red, green, blue
	buf.Write([]byte{
		255, 0, 0, 255,
		0, 255, 0, 255,
		0, 0, 255, 255,
	})
	// Normals
	binary.Write(&buf, binary.LittleEndian, []float32{
		0, 0, 1,
		0, 0, 1,
		0, 0, 1,
	})

	os.WriteFile("triangle.wfm", buf.Bytes(), 0644)
}
