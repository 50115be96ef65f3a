package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/scrap_remaster/d3d"
)

func TestPrintText(t *testing.T) {
	var buf bytes.Buffer
	printText(&buf, newReport(0x1c2))

	out := buf.String()
	assert.Contains(t, out, "0x1c2 XYZ|DIFFUSE|SPECULAR|TEX1: 24 bytes")
	assert.Contains(t, out, "+16  COLOR1 x1")
	assert.Contains(t, out, "declaration spans 28 bytes")
}

func TestReportYaml(t *testing.T) {
	data, err := yaml.Marshal(newReport(d3d.FVF_XYZ | d3d.FVF_NORMAL))
	assert.NoError(t, err)
	assert.Contains(t, string(data), "size: 24")
	assert.Contains(t, string(data), "usage: NORMAL")
}
