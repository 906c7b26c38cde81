//go:build gpu

package main

import _ "github.com/gogpu/gg/gpu" // GPU accelerator for the raster surfaces
