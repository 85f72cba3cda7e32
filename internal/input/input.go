// Package input contains identifiers used in getting lines of source text
// for cmajc to scan and parse, from either a TTY or a plain pipe.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader reads one line of source text at a time.
type LineReader interface {
	ReadLine() (string, error)
	Close() error
}

// DirectLineReader implements LineReader by reading from any generic input
// stream directly. It does not sanitize the input of control and escape
// sequences, so it is meant for piped/batch input rather than a TTY.
//
// DirectLineReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectLineReader struct {
	r *bufio.Reader
}

// InteractiveLineReader implements LineReader by reading from stdin using a
// Go implementation of the GNU Readline library. This keeps input clear of
// typing and editing escape sequences and enables command history. It should
// in general only be used when directly connected to a TTY.
//
// InteractiveLineReader should not be used directly; instead, create one
// with [NewInteractiveReader].
type InteractiveLineReader struct {
	rl     *readline.Instance
	prompt string
}

// NewDirectReader creates a new DirectLineReader and initializes a buffered
// reader on the provided reader.
func NewDirectReader(r io.Reader) *DirectLineReader {
	return &DirectLineReader{r: bufio.NewReader(r)}
}

// NewInteractiveReader creates a new InteractiveLineReader and initializes
// readline with the given prompt. The returned reader must have Close
// called on it before disposal to properly tear down readline resources.
func NewInteractiveReader(prompt string) (*InteractiveLineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveLineReader{rl: rl, prompt: prompt}, nil
}

// Close is a no-op; DirectLineReader holds no resources that need teardown,
// but it implements LineReader for interchangeability with
// InteractiveLineReader.
func (dlr *DirectLineReader) Close() error {
	return nil
}

// Close tears down readline resources.
func (ilr *InteractiveLineReader) Close() error {
	return ilr.rl.Close()
}

// ReadLine reads the next line, stripped of its trailing newline. At end of
// input it returns "", io.EOF.
func (dlr *DirectLineReader) ReadLine() (string, error) {
	line, err := dlr.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadLine reads the next line from stdin via readline. At end of input it
// returns "", io.EOF.
func (ilr *InteractiveLineReader) ReadLine() (string, error) {
	line, err := ilr.rl.Readline()
	if err != nil {
		return "", err
	}
	return line, nil
}

// SetPrompt updates the prompt text.
func (ilr *InteractiveLineReader) SetPrompt(p string) {
	ilr.prompt = p
	ilr.rl.SetPrompt(p)
}
