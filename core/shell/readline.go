package shell

import (
	"io"

	"github.com/abiosoft/readline"
)

// ReadlineSource is a LineSource with terminal line editing, used when the
// interpreter's stdin is an interactive terminal. History is disabled; the
// interpreter keeps no state between lines.
type ReadlineSource struct {
	rl *readline.Instance
}

// newReadlineConfig binds a readline instance to the interpreter's own
// streams. The cancelable wrapper lets Close unblock a pending read.
func newReadlineConfig(streams Streams) *readline.Config {
	return &readline.Config{
		Stdin:        readline.NewCancelableStdin(streams.In),
		Stdout:       streams.Out,
		Stderr:       streams.Err,
		HistoryLimit: -1,
	}
}

// NewReadlineSource puts the terminal on streams' stdio into line-edit mode.
// The caller must Close it to restore the terminal state.
func NewReadlineSource(streams Streams) (*ReadlineSource, error) {
	cfg := newReadlineConfig(streams)
	if err := cfg.Init(); err != nil {
		return nil, err
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}
	return &ReadlineSource{rl: rl}, nil
}

// Prompt implements LineSource.
func (r *ReadlineSource) Prompt(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	switch err {
	case nil:
		return line, nil
	case readline.ErrInterrupt:
		return "", ErrInterrupted
	case io.EOF:
		return "", io.EOF
	default:
		return "", err
	}
}

// Close restores the terminal.
func (r *ReadlineSource) Close() error {
	return r.rl.Close()
}

var _ LineSource = (*ReadlineSource)(nil)
var _ LineSource = (*PlainSource)(nil)
