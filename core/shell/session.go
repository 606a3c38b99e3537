package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pipesh/pipesh/core/events"
)

// ErrInterrupted is returned by a LineSource when the user cancelled the
// line being edited. The session discards the line and prompts again.
var ErrInterrupted = errors.New("interrupted")

// LineSource produces input lines. Prompt writes the prompt, blocks for one
// line, and returns it without the trailing newline. io.EOF means the input
// is exhausted and the session should end cleanly.
type LineSource interface {
	Prompt(prompt string) (string, error)
}

// PlainSource reads lines with no editing or echo handling, for input that
// is not a terminal. Lines of any length are accepted.
type PlainSource struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlainSource returns a LineSource reading from in and writing prompts
// to out.
func NewPlainSource(in io.Reader, out io.Writer) *PlainSource {
	return &PlainSource{in: bufio.NewReader(in), out: out}
}

// Prompt implements LineSource.
func (p *PlainSource) Prompt(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		// A final line without a newline is still a line.
		if err == io.EOF && line != "" {
			return line, nil
		}
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// Session drives the read, interpret, wait cycle until the input ends, a
// read fails, or the exit built-in terminates the process.
type Session struct {
	ex     *Executor
	src    LineSource
	prompt string
	log    *events.SessionLog
}

// NewSession assembles a session. The prompt is taken from the executor's
// settings; a single space always separates it from the cursor. log may be
// events.NopSession() when nothing should be recorded.
func NewSession(ex *Executor, src LineSource, log *events.SessionLog) *Session {
	return &Session{
		ex:     ex,
		src:    src,
		prompt: ex.settings.Prompt + " ",
		log:    log,
	}
}

// Run loops until EOF (clean), an interrupted line (retried), or a read
// error (returned to the caller). Each complete line runs to completion,
// including the blocking wait on its final stage, before the next prompt.
func (s *Session) Run() error {
	for {
		line, err := s.src.Prompt(s.prompt)
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, ErrInterrupted):
			continue
		case err != nil:
			return err
		}

		res := s.ex.Run(line)
		s.record(line, res)
		if res.Exited {
			// Reached only when the executor's Env is a test fake; the real
			// exit built-in never returns.
			return nil
		}
	}
}

func (s *Session) record(line string, res Result) {
	run := events.PipelineRun{
		Line:    line,
		Aborted: res.Aborted,
		Broken:  res.Broken(),
		Exited:  res.Exited,
		Code:    res.Code,
	}
	for _, st := range res.Stages {
		rec := events.StageRecord{Program: st.Spec.Program, Kind: st.Kind.String()}
		if st.Err != nil {
			rec.Error = st.Err.Error()
		}
		run.Stages = append(run.Stages, rec)
	}
	s.log.Record(run)
}
