package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/cwbudde/funcity/pkg/funcity"
	"github.com/gkampitakis/go-snaps/snaps"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it, the way the teacher's CLI integration tests
// capture a subprocess's stdout pipe (cmd/dwscript/for_step_test.go), but
// in-process since funcity's run command prints directly to os.Stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestRunCommandRendersText(t *testing.T) {
	out := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"run", "-e", "Hello{{add 1 2}}"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	})
	snaps.MatchSnapshot(t, out)
}

func TestRunCommandDumpAST(t *testing.T) {
	out := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"run", "--code", "--dump-ast", "-e", "set x 1"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	})
	snaps.MatchSnapshot(t, out)
}

func TestModeFromFlag(t *testing.T) {
	if got := modeFromFlag(false); got != funcity.Template {
		t.Fatalf("modeFromFlag(false) = %v, want Template", got)
	}
	if got := modeFromFlag(true); got != funcity.Code {
		t.Fatalf("modeFromFlag(true) = %v, want Code", got)
	}
}
