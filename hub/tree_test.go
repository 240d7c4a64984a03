package hub_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"onnxget/hub"
)

func TestFormatSize(t *testing.T) {
	gt.Equal(t, hub.FormatSize(512), "512 B")
	gt.Equal(t, hub.FormatSize(2048), "2.0 KiB")
	gt.Equal(t, hub.FormatSize(5*1024*1024), "5.0 MiB")
}

func TestPrintTree(t *testing.T) {
	files := []hub.File{
		{Path: "onnx/model_int8.onnx", Size: 2048, Lfs: &hub.LfsInfo{Oid: "sha", Size: 2048}},
		{Path: "config.json", Size: 120},
	}

	var buf bytes.Buffer
	hub.PrintTree(&buf, files)
	out := buf.String()

	gt.True(t, strings.Contains(out, "onnx"))
	gt.True(t, strings.Contains(out, "model_int8.onnx 2.0 KiB (LFS)"))
	gt.True(t, strings.Contains(out, "config.json 120 B"))
}
