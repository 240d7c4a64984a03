package registry_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"onnxget/registry"
)

func TestResolveExactAlias(t *testing.T) {
	for _, e := range registry.All() {
		repo, entry, err := registry.Resolve(e.Name)
		gt.NoError(t, err)
		gt.Equal(t, repo, e.Repo)
		gt.V(t, entry).NotNil()
		gt.Equal(t, entry.Name, e.Name)
	}
}

func TestResolvePassThrough(t *testing.T) {
	repo, entry, err := registry.Resolve("someone/some-model")
	gt.NoError(t, err)
	gt.Equal(t, repo, "someone/some-model")
	gt.V(t, entry).Nil()
}

func TestResolvePartialMatch(t *testing.T) {
	// "flan" matches several aliases; definition order decides.
	repo, entry, err := registry.Resolve("flan")
	gt.NoError(t, err)
	gt.Equal(t, repo, "Xenova/flan-t5-small")
	gt.Equal(t, entry.Name, "flan-t5-small")

	// Case-insensitive.
	repo, _, err = registry.Resolve("QWEN")
	gt.NoError(t, err)
	gt.Equal(t, repo, "onnx-community/Qwen3-1.7B-ONNX")
}

func TestResolveUnknown(t *testing.T) {
	_, _, err := registry.Resolve("no-such-model")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, registry.TagUnknownModel))
}

func TestResolveDeterministic(t *testing.T) {
	first, _, err := registry.Resolve("flan")
	gt.NoError(t, err)
	for i := 0; i < 10; i++ {
		repo, _, err := registry.Resolve("flan")
		gt.NoError(t, err)
		gt.Equal(t, repo, first)
	}
}

func TestLocalDirName(t *testing.T) {
	repo, entry, err := registry.Resolve("distilbart")
	gt.NoError(t, err)
	gt.Equal(t, registry.LocalDirName(repo, entry), "distilbart-HF")

	repo, entry, err = registry.Resolve("Xenova/flan-t5-base")
	gt.NoError(t, err)
	gt.Equal(t, registry.LocalDirName(repo, entry), "Xenova-flan-t5-base-HF")
}
