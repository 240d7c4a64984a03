// Package registry holds the static table of known ONNX models and maps
// user-supplied names to HuggingFace repository ids.
package registry

import (
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// TagUnknownModel marks resolution failures for names that match nothing.
var TagUnknownModel = goerr.NewTag("unknown_model")

// Entry describes one known model. Entries are defined once at startup and
// never mutated.
type Entry struct {
	Name         string
	Repo         string
	Description  string
	Architecture string
	SizeMB       int
}

// entries keeps definition order; partial matching iterates this slice so the
// first defined alias wins.
var entries = []Entry{
	{
		Name:         "flan-t5-small",
		Repo:         "Xenova/flan-t5-small",
		Description:  "FLAN-T5 Small (60M params) - encoder-decoder for summarization/QA",
		Architecture: "t5",
		SizeMB:       300,
	},
	{
		Name:         "flan-t5-base",
		Repo:         "Xenova/flan-t5-base",
		Description:  "FLAN-T5 Base (220M params) - encoder-decoder for summarization/QA",
		Architecture: "t5",
		SizeMB:       900,
	},
	{
		Name:         "flan-t5-large",
		Repo:         "dmmagdal/flan-t5-large-onnx",
		Description:  "FLAN-T5 Large (770M params) - encoder-decoder for summarization/QA",
		Architecture: "t5",
		SizeMB:       3000,
	},
	{
		Name:         "distilbart",
		Repo:         "Xenova/distilbart-cnn-12-6",
		Description:  "DistilBART (306M params) - encoder-decoder for summarization",
		Architecture: "bart",
		SizeMB:       1200,
	},
	{
		Name:         "qwen3",
		Repo:         "onnx-community/Qwen3-1.7B-ONNX",
		Description:  "Qwen 3 1.7B Instruct - decoder-only chat model",
		Architecture: "qwen",
		SizeMB:       6000,
	},
	{
		Name:         "llama3",
		Repo:         "onnx-community/Llama-3.2-1B-Instruct-ONNX",
		Description:  "Llama 3.2 1B Instruct - decoder-only chat model",
		Architecture: "llama",
		SizeMB:       5000,
	},
	{
		Name:         "phi3",
		Repo:         "microsoft/Phi-3-mini-128k-instruct-onnx",
		Description:  "Phi-3 Mini 128k Instruct - decoder-only chat model",
		Architecture: "phi",
		SizeMB:       7000,
	},
}

var byName = make(map[string]*Entry, len(entries))

func init() {
	for i := range entries {
		byName[entries[i].Name] = &entries[i]
	}
}

// All returns the registry entries in definition order.
func All() []Entry {
	return entries
}

// Lookup returns the entry for an exact alias, or nil.
func Lookup(name string) *Entry {
	return byName[name]
}

// Resolve maps a user-supplied model name to a repository id. Precedence:
// exact alias, verbatim "owner/name" pass-through, then case-insensitive
// substring match over aliases in definition order. The returned entry is nil
// for pass-through ids.
func Resolve(name string) (string, *Entry, error) {
	if e := byName[name]; e != nil {
		return e.Repo, e, nil
	}

	if strings.Contains(name, "/") {
		return name, nil, nil
	}

	lower := strings.ToLower(name)
	for i := range entries {
		if strings.Contains(strings.ToLower(entries[i].Name), lower) {
			slog.Info("Found partial match", "input", name, "alias", entries[i].Name)
			return entries[i].Repo, &entries[i], nil
		}
	}

	return "", nil, goerr.New("unknown model, use --list to see available models",
		goerr.V("model", name), goerr.T(TagUnknownModel))
}

// dirSuffix marks directories produced by this tool.
const dirSuffix = "-HF"

// LocalDirName returns the directory name a model is downloaded into: the
// alias when one resolved, otherwise the repo id with "/" flattened, both
// with the fixed suffix.
func LocalDirName(repo string, entry *Entry) string {
	if entry != nil {
		return entry.Name + dirSuffix
	}
	return strings.ReplaceAll(repo, "/", "-") + dirSuffix
}
