// WFM (Wireframe Mesh) format: persisted triangle-soup records.
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"os"
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/wiresoup/pkg/wireframe"
)

// WFM format errors.
var (
	ErrInvalidWFMMagic       = errors.New("invalid WFM magic: expected 'WFMD'")
	ErrUnsupportedWFMVersion = errors.New("unsupported WFM version")
	ErrTruncatedWFMData      = errors.New("truncated WFM data")
)

const (
	wfmMagic        = "WFMD"
	wfmVersionMajor = 1
	wfmVersionMinor = 0
	wfmNameLength   = 64
	wfmHeaderSize   = 4 + 2 + 2 + wfmNameLength + 4
)

// WFM attribute flags.
const (
	WFMFlagNormals   uint8 = 1 << 0
	WFMFlagTexCoords uint8 = 1 << 1
)

// WFMVersion represents the WFM file version.
type WFMVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v WFMVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// WFMHeader describes a WFM file without decoding its buffers.
type WFMHeader struct {
	Version     WFMVersion
	Flags       uint8
	Name        string
	VertexCount uint32
}

// HasNormals reports whether the file stores normals.
func (h WFMHeader) HasNormals() bool { return h.Flags&WFMFlagNormals != 0 }

// HasTexCoords reports whether the file stores texture coordinates.
func (h WFMHeader) HasTexCoords() bool { return h.Flags&WFMFlagTexCoords != 0 }

// EncodeWFM serializes a record.
//
// Layout (little endian):
//
//	magic "WFMD" | major u8 | minor u8 | flags u8 | reserved u8 | name [64]byte | vertexCount u32
//	positions [n][3]f32 | indices [n]u32 | colors [n][4]u8 | normals [n][3]f32? | texcoords [n][2]f32?
func EncodeWFM(rec *wireframe.Record) ([]byte, error) {
	var flags uint8
	if rec.HasNormals() {
		flags |= WFMFlagNormals
	}
	if rec.HasTexCoords() {
		flags |= WFMFlagTexCoords
	}

	n := rec.VertexCount()
	buf := bytes.NewBuffer(make([]byte, 0, wfmHeaderSize+n*48))

	buf.WriteString(wfmMagic)
	buf.Write([]byte{wfmVersionMajor, wfmVersionMinor, flags, 0})
	buf.Write(fixedString(rec.Name(), wfmNameLength))

	fields := []any{uint32(n), rec.Positions(), rec.Indices(), rec.Markers()}
	if flags&WFMFlagNormals != 0 {
		fields = append(fields, rec.Normals())
	}
	if flags&WFMFlagTexCoords != 0 {
		fields = append(fields, rec.TexCoords())
	}
	for _, f := range fields {
		if err := binary.Write(buf, binary.LittleEndian, f); err != nil {
			return nil, fmt.Errorf("encoding %q: %w", rec.Name(), err)
		}
	}

	return buf.Bytes(), nil
}

// ParseWFMHeader decodes only the fixed header.
func ParseWFMHeader(data []byte) (WFMHeader, error) {
	if len(data) < wfmHeaderSize {
		return WFMHeader{}, ErrTruncatedWFMData
	}
	if string(data[:4]) != wfmMagic {
		return WFMHeader{}, ErrInvalidWFMMagic
	}

	h := WFMHeader{
		Version: WFMVersion{Major: data[4], Minor: data[5]},
		Flags:   data[6],
	}
	if h.Version.Major != wfmVersionMajor {
		return WFMHeader{}, fmt.Errorf("%w: %s", ErrUnsupportedWFMVersion, h.Version)
	}

	h.Name = readString(data[8 : 8+wfmNameLength])
	h.VertexCount = binary.LittleEndian.Uint32(data[8+wfmNameLength : wfmHeaderSize])

	return h, nil
}

// ParseWFM parses a WFM file into a record. Buffers that violate the record
// invariants yield wireframe.ErrMalformedRecord.
func ParseWFM(data []byte) (*wireframe.Record, error) {
	h, err := ParseWFMHeader(data)
	if err != nil {
		return nil, err
	}

	n := int(h.VertexCount)
	stride := 12 + 4 + 4
	if h.HasNormals() {
		stride += 12
	}
	if h.HasTexCoords() {
		stride += 8
	}
	if len(data)-wfmHeaderSize < n*stride {
		return nil, fmt.Errorf("%w: %d vertices need %d bytes, have %d",
			ErrTruncatedWFMData, n, n*stride, len(data)-wfmHeaderSize)
	}

	r := bytes.NewReader(data[wfmHeaderSize:])

	positions := make([]mgl32.Vec3, n)
	indices := make([]uint32, n)
	markers := make([]color.RGBA, n)
	if err := readAll(r, positions, indices, markers); err != nil {
		return nil, err
	}

	var normals []mgl32.Vec3
	if h.HasNormals() {
		normals = make([]mgl32.Vec3, n)
		if err := readAll(r, normals); err != nil {
			return nil, err
		}
	}

	var texCoords []mgl32.Vec2
	if h.HasTexCoords() {
		texCoords = make([]mgl32.Vec2, n)
		if err := readAll(r, texCoords); err != nil {
			return nil, err
		}
	}

	return wireframe.NewRecord(h.Name, positions, indices, markers, normals, texCoords)
}

// LoadWFM loads and parses a WFM file from disk.
func LoadWFM(path string) (*wireframe.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseWFM(data)
}

func readAll(r *bytes.Reader, dst ...any) error {
	for _, d := range dst {
		if err := binary.Read(r, binary.LittleEndian, d); err != nil {
			return fmt.Errorf("%w: %v", ErrTruncatedWFMData, err)
		}
	}
	return nil
}

// readString decodes a null-padded string.
func readString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}

// fixedString pads s to length bytes, truncating on a rune boundary so the
// stored name stays valid UTF-8.
func fixedString(s string, length int) []byte {
	if len(s) > length {
		cut := length
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	buf := make([]byte, length)
	copy(buf, s)
	return buf
}
