package cmd

import "github.com/cwbudde/funcity/pkg/funcity"

// modeFromFlag maps the --code flag to a tokenizer mode: by default source
// is parsed in template mode (literal text interleaved with {{ }} code
// regions); --code treats the whole input as a single code region,
// following the teacher's boolean mode-switch flags (--dump-ast, --trace)
// rather than a string enum.
func modeFromFlag(code bool) funcity.Mode {
	if code {
		return funcity.Code
	}
	return funcity.Template
}
