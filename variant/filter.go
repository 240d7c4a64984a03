package variant

import (
	"path"
	"strings"
)

// essentialFiles are non-weight files required to run a model regardless of
// the chosen variant, matched by base name.
var essentialFiles = map[string]struct{}{
	"config.json":             {},
	"generation_config.json":  {},
	"tokenizer_config.json":   {},
	"tokenizer.json":          {},
	"special_tokens_map.json": {},
	"vocab.json":              {},
	"merges.txt":              {},
	"vocab.txt":               {},
	"sentencepiece.bpe.model": {},
	"tokenizer.model":         {},
}

// Result holds the selected repository paths, split into model weights and
// supporting config files. Both lists preserve first-occurrence input order.
type Result struct {
	ONNX   []string
	Config []string
}

// Filter selects the files to download from a repository listing. ONNX
// candidates are matched against the requested variants; essential config
// files are always included. An empty variant list means all variants. Zero
// ONNX matches is not an error.
func Filter(files []string, variants []Variant) Result {
	if len(variants) == 0 {
		variants = All()
	}

	var onnx []string
	for _, f := range files {
		if !isONNXCandidate(f) {
			continue
		}
		lower := strings.ToLower(f)
		for _, v := range variants {
			if matchesVariant(lower, v) {
				onnx = append(onnx, f)
				break
			}
		}
	}

	var config []string
	for _, f := range files {
		if _, ok := essentialFiles[path.Base(f)]; ok {
			config = append(config, f)
		}
	}

	return Result{
		ONNX:   dedup(onnx),
		Config: dedup(config),
	}
}

func isONNXCandidate(f string) bool {
	return strings.HasSuffix(f, ".onnx") || strings.HasSuffix(f, ".onnx_data")
}

// matchesVariant reports whether a lowercased path belongs to a variant. Full
// precision requires a known base name and no quantization suffix, since
// quantized files are named as suffixed forms of the same base names.
func matchesVariant(lower string, v Variant) bool {
	if v == Full {
		return containsAny(lower, fullBaseNames) && !hasQuantSuffix(lower)
	}
	return containsAny(lower, suffixPatterns[v])
}

func hasQuantSuffix(lower string) bool {
	for _, patterns := range suffixPatterns {
		if containsAny(lower, patterns) {
			return true
		}
	}
	return false
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// dedup removes repeated paths, keeping the earliest occurrence.
func dedup(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	var out []string
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
