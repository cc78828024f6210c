// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// WaveVertexShader displaces the grid with the sine/cosine wave.
//
//go:embed wave.vert
var WaveVertexShader string

// WaveFragmentShader colours fragments by their displaced position.
//
//go:embed wave.frag
var WaveFragmentShader string
