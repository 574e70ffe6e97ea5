// Package input contains identifiers used in reading sentence input for the
// paraphrase-lattice REPL from the CLI or other sources of input.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// DirectSentenceReader reads sentences from any generic input stream
// directly. It can be used generically with any io.Reader but does not
// sanitize the input of control and escape sequences.
//
// DirectSentenceReader should not be used directly; instead, create one
// with [NewDirectReader].
type DirectSentenceReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// InteractiveSentenceReader reads sentences from stdin using a Go
// implementation of the GNU Readline library. This keeps input clear of
// all typing and editing escape sequences and enables the use of input
// history. This should in general only be used when directly connecting
// to a TTY for input.
//
// InteractiveSentenceReader should not be used directly; instead, create
// one with [NewInteractiveReader].
type InteractiveSentenceReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewDirectReader creates a new DirectSentenceReader and initializes a
// buffered reader on the provided reader. The returned reader must have
// Close called on it before disposal to properly tear down resources.
func NewDirectReader(r io.Reader) *DirectSentenceReader {
	return &DirectSentenceReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates a new InteractiveSentenceReader and
// initializes readline. The returned reader must have Close called on it
// before disposal to properly teardown readline resources.
func NewInteractiveReader() (*InteractiveSentenceReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "> ",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveSentenceReader{
		rl:     rl,
		prompt: "> ",
	}, nil
}

// Close cleans up resources associated with the DirectSentenceReader.
func (dcr *DirectSentenceReader) Close() error {
	return nil
}

// Close cleans up readline resources associated with the
// InteractiveSentenceReader.
func (icr *InteractiveSentenceReader) Close() error {
	return icr.rl.Close()
}

// ReadSentence reads the next line from the underlying stream. The returned
// string will only be empty if there is an error reading input, otherwise
// this function blocks until a line containing non-space characters is
// read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (dcr *DirectSentenceReader) ReadSentence() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dcr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && dcr.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// ReadSentence reads the next line from stdin. The returned string will
// only be empty if there is an error, otherwise this function blocks until
// a line consisting of more than empty or whitespace-only input is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (icr *InteractiveSentenceReader) ReadSentence() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = icr.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && icr.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// AllowBlank sets whether blank input is allowed. By default it is not.
func (dcr *DirectSentenceReader) AllowBlank(allow bool) {
	dcr.blanksAllowed = allow
}

// AllowBlank sets whether blank input is allowed. By default it is not.
func (icr *InteractiveSentenceReader) AllowBlank(allow bool) {
	icr.blanksAllowed = allow
}

// SetPrompt updates the prompt to the given text.
func (icr *InteractiveSentenceReader) SetPrompt(p string) {
	icr.rl.SetPrompt(p)
}

// GetPrompt gets the current prompt.
func (icr *InteractiveSentenceReader) GetPrompt() string {
	return icr.prompt
}
