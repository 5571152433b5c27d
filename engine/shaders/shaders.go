package shaders

import (
	_ "embed"
)

//go:embed line.wgsl
var LineWGSL string
