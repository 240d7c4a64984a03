// Package variant classifies repository files by quantization variant and
// selects which ones to download.
package variant

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// TagInvalidVariant marks parse failures for unknown variant tokens.
var TagInvalidVariant = goerr.NewTag("invalid_variant")

// Variant is a quantization/precision tier of a model's weights.
type Variant string

const (
	Full Variant = "full"
	FP16 Variant = "fp16"
	INT8 Variant = "int8"
	Q4   Variant = "q4"
)

// All returns every variant in canonical order.
func All() []Variant {
	return []Variant{Full, FP16, INT8, Q4}
}

// fullBaseNames are the unsuffixed model file names that make up the full
// precision variant.
var fullBaseNames = []string{
	"encoder_model.onnx",
	"decoder_model.onnx",
	"decoder_with_past_model.onnx",
	"model.onnx",
	"decoder_model_merged.onnx",
}

// suffixPatterns are literal substrings identifying each quantized variant.
var suffixPatterns = map[Variant][]string{
	FP16: {"_fp16.onnx", "-fp16.onnx"},
	INT8: {"_int8.onnx", "-int8.onnx", "_quantized.onnx"},
	Q4:   {"_int4.onnx", "-int4.onnx", "_q4.onnx", "-q4.onnx"},
}

// Parse validates a comma-separated variant list. Empty input selects all
// variants.
func Parse(csv string) ([]Variant, error) {
	if strings.TrimSpace(csv) == "" {
		return All(), nil
	}

	var out []Variant
	for _, tok := range strings.Split(csv, ",") {
		v := Variant(strings.ToLower(strings.TrimSpace(tok)))
		switch v {
		case Full, FP16, INT8, Q4:
			out = append(out, v)
		default:
			return nil, goerr.New("invalid variant, valid options: full, fp16, int8, q4",
				goerr.V("variant", string(v)), goerr.T(TagInvalidVariant))
		}
	}
	return out, nil
}
