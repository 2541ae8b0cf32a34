// Package formats reads and writes the mesh files handled by wiresoup:
// Wavefront OBJ sources and WFM processed records.
package formats
