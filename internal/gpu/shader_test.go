package gpu

import (
	"fmt"
	"strings"
	"testing"
)

func TestJuliaShaderEmbedded(t *testing.T) {
	if juliaShaderSource == "" {
		t.Fatal("embedded shader source is empty")
	}

	// The workgroup size in the shader must match the Go-side constants
	// used to compute the dispatch grid.
	wgAttr := fmt.Sprintf("@workgroup_size(%d, %d)", WorkgroupWidth, WorkgroupHeight)
	if !strings.Contains(juliaShaderSource, wgAttr) {
		t.Errorf("shader missing %q", wgAttr)
	}

	for _, want := range []string{
		"fn main",
		"@builtin(global_invocation_id)",
		"var<uniform> params",
		"var<storage, read_write> pixels",
		// Bounds guard for edge workgroups.
		"x >= params.width || y >= params.height",
	} {
		if !strings.Contains(juliaShaderSource, want) {
			t.Errorf("shader missing %q", want)
		}
	}
}
