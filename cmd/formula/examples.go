package main

import (
	"bytes"
	_ "embed"
	"io"
	"log/slog"

	"github.com/zephyrtronium/formula"
)

//go:embed examples.yaml
var examplesYAML []byte

// showExamples runs the built-in showcase and returns the number of examples
// whose results differ from what they claim.
func showExamples(e *formula.Evaluator, w io.Writer, opts options, log *slog.Logger) (int, error) {
	b, err := decodeBatch(bytes.NewReader(examplesYAML))
	if err != nil {
		return 0, err
	}
	return b.run(e, w, opts, log), nil
}
