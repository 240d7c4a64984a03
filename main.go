package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"

	"onnxget/cmd"
	"onnxget/hub"
	"onnxget/registry"
	"onnxget/variant"
)

func main() {
	if err := cmd.Execute(); err != nil {
		slog.Error("Download failed", "error", err.Error())
		if !isDomainError(err) {
			// Unexpected failure: dump the full error with stack and values.
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		}
		os.Exit(1)
	}
}

func isDomainError(err error) bool {
	return goerr.HasTag(err, registry.TagUnknownModel) ||
		goerr.HasTag(err, variant.TagInvalidVariant) ||
		goerr.HasTag(err, hub.TagRepoNotFound) ||
		goerr.HasTag(err, hub.TagRepoAccess)
}
