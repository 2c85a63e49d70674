// Package console handles terminal input and output for the chat session.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// LineReader reads one line of user input per call. It returns io.EOF when
// the user ends the input.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// NewReader returns a line-editing reader when stdin is a terminal and a plain
// buffered reader otherwise. historyFile may be empty.
func NewReader(historyFile string) LineReader {
	if term.IsTerminal(int(os.Stdin.Fd())) && liner.TerminalSupported() {
		return NewEditingReader(historyFile)
	}
	return NewPlainReader(os.Stdin, os.Stdout)
}

// EditingReader provides line editing and input history.
type EditingReader struct {
	line        *liner.State
	historyFile string
}

// NewEditingReader takes over the terminal until Close is called.
func NewEditingReader(historyFile string) *EditingReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	r := &EditingReader{line: line, historyFile: historyFile}
	r.loadHistory()
	return r
}

func (r *EditingReader) loadHistory() {
	if r.historyFile == "" {
		return
	}
	f, err := os.Open(r.historyFile)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := r.line.ReadHistory(f); err != nil {
		slog.Debug("input_history_load_failed", "path", r.historyFile, "error", err)
	}
}

// ReadLine shows prompt and reads a line. Ctrl+C and Ctrl+D both end input.
func (r *EditingReader) ReadLine(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves the history and restores the terminal.
func (r *EditingReader) Close() error {
	if err := r.saveHistory(); err != nil {
		slog.Warn("input_history_save_failed", "path", r.historyFile, "error", err)
	}
	return r.line.Close()
}

func (r *EditingReader) saveHistory() error {
	if r.historyFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(r.historyFile), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = r.line.WriteHistory(f)
	return err
}

// PlainReader reads lines from any reader, for pipes and tests.
type PlainReader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlainReader writes prompts to out and reads lines from in.
func NewPlainReader(in io.Reader, out io.Writer) *PlainReader {
	return &PlainReader{in: bufio.NewReader(in), out: out}
}

// ReadLine returns the next line without its line ending. A final line
// without a newline is returned before io.EOF.
func (r *PlainReader) ReadLine(prompt string) (string, error) {
	if r.out != nil && prompt != "" {
		fmt.Fprint(r.out, prompt)
	}
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close is a no-op.
func (r *PlainReader) Close() error { return nil }
