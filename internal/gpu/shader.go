package gpu

import _ "embed"

// juliaShaderSource is the escape-time kernel: one invocation per pixel,
// with a bounds guard so the workgroup grid can round up past the image
// edge.
//
//go:embed shaders/julia.wgsl
var juliaShaderSource string
