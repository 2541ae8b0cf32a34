// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// WireVertexShader passes the corner markers through as barycentric weights.
//
//go:embed wire.vert
var WireVertexShader string

// WireFragmentShader draws triangle edges from the interpolated corner markers.
//
//go:embed wire.frag
var WireFragmentShader string
