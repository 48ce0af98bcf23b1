package refresh

import (
	"context"
	"io"
	"os/exec"
)

// RipgrepScanner runs an external ripgrep-compatible binary to list
// files. It is preferred over WalkScanner whenever the binary is found,
// since it honors .gitignore-style excludes natively and is dramatically
// faster on large trees.
type RipgrepScanner struct {
	// BinaryName is the executable looked up on PATH, "rg" by default.
	BinaryName string
}

// NewRipgrepScanner returns a scanner that looks up binaryName on PATH,
// defaulting to "rg" when binaryName is empty.
func NewRipgrepScanner(binaryName string) *RipgrepScanner {
	if binaryName == "" {
		binaryName = "rg"
	}
	return &RipgrepScanner{BinaryName: binaryName}
}

// Available reports whether the configured binary is on PATH.
func (s *RipgrepScanner) Available() bool {
	_, err := exec.LookPath(s.BinaryName)
	return err == nil
}

// Scan shells out to `<bin> --files --follow --hidden --ignore-file
// patternFile` rooted at root, returning its stdout as a newline-delimited
// stream of relative paths. The returned ReadCloser wraps the process so
// that closing it also waits on the command and surfaces its exit error.
func (s *RipgrepScanner) Scan(ctx context.Context, root, patternFile string) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, s.BinaryName,
		"--files", "--follow", "--hidden", "--ignore-file", patternFile,
	)
	cmd.Dir = root

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &cmdReadCloser{ReadCloser: stdout, cmd: cmd}, nil
}

// cmdReadCloser waits on the wrapped command when the caller closes it,
// so a ripgrep exit failure (other than "no matches", code 1) is not
// silently dropped.
type cmdReadCloser struct {
	io.ReadCloser
	cmd *exec.Cmd
}

func (c *cmdReadCloser) Close() error {
	closeErr := c.ReadCloser.Close()
	waitErr := c.cmd.Wait()
	if exitErr, ok := waitErr.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
		// ripgrep's "no files matched" exit code; not a failure.
		waitErr = nil
	}
	if waitErr != nil {
		return waitErr
	}
	return closeErr
}
