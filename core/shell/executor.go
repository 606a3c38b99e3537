package shell

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Settings are the fixed, read-only knobs the interpreter consults: the
// prompt written before each read and the string the version built-in
// reports. They are set once at process start and never reloaded.
type Settings struct {
	Prompt  string
	Version string
}

// Streams carries the interpreter's own standard streams. The final stage of
// every pipeline writes to Out directly and the first stage reads from In
// directly, so when these are the process's real stdio the children inherit
// the descriptors without any buffering in between.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns Streams bound to the process's own stdio.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// StageKind classifies how the executor handled one pipe-segment.
type StageKind int

const (
	// StageSpawned marks a segment that started an external process.
	StageSpawned StageKind = iota
	// StageBuiltin marks a segment handled inside the interpreter.
	StageBuiltin
	// StageBroken marks a segment whose process could not be started. The
	// pipeline continues but the next stage reads from the interpreter's
	// stdin rather than from the broken stage.
	StageBroken
	// StageSkipped marks a segment never reached because an earlier segment
	// aborted the pipeline.
	StageSkipped
)

func (k StageKind) String() string {
	switch k {
	case StageSpawned:
		return "spawned"
	case StageBuiltin:
		return "builtin"
	case StageBroken:
		return "broken"
	case StageSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("StageKind(%d)", int(k))
	}
}

// StageResult records the outcome of a single pipe-segment.
type StageResult struct {
	Spec CommandSpec
	Kind StageKind
	Err  error
}

// Result describes what one input line did. Every failure it mentions has
// already been reported to the error stream; Result exists so the loop and
// the event log can observe outcomes (a disconnected pipeline in particular)
// without re-parsing interpreter output.
type Result struct {
	Stages  []StageResult
	Aborted bool // an empty segment (or strict mode) stopped the walk
	Exited  bool // the exit built-in fired
	Code    int  // exit status of the final stage, 0 when none ran
}

// Broken reports whether any stage failed to spawn, leaving the pipeline
// running in the documented "disconnected" mode.
func (r *Result) Broken() bool {
	for _, st := range r.Stages {
		if st.Kind == StageBroken {
			return true
		}
	}
	return false
}

// Executor turns parsed pipelines into running processes. It recognizes the
// built-in commands, wires adjacent stages' standard streams together, and
// surfaces the final stage's exit status. Between segments it owns at most
// one live stage handle; see stage for the ownership rules.
type Executor struct {
	settings Settings
	io       Streams
	env      Env

	// strictPipes aborts the remaining segments when a middle stage fails
	// to spawn instead of reconnecting the next stage to the interpreter's
	// stdin.
	strictPipes bool
}

// Option configures an Executor.
type Option func(*Executor)

// WithEnv substitutes the process-state capability, primarily for tests.
func WithEnv(env Env) Option {
	return func(ex *Executor) { ex.env = env }
}

// WithStrictPipes makes a mid-pipeline spawn failure abort the remaining
// segments rather than falling back to the interpreter's stdin.
func WithStrictPipes(strict bool) Option {
	return func(ex *Executor) { ex.strictPipes = strict }
}

// NewExecutor builds an Executor over the given settings and streams.
func NewExecutor(settings Settings, streams Streams, opts ...Option) *Executor {
	ex := &Executor{
		settings: settings,
		io:       streams,
		env:      OSEnv{},
	}
	for _, opt := range opts {
		opt(ex)
	}
	return ex
}

// Run interprets one input line: parse it into segments, walk them in order
// dispatching built-ins and spawning external stages, then block until the
// final spawned stage terminates. All failures are reported to the error
// stream and none of them are fatal to the caller; the sole way Run does not
// return is the exit built-in terminating the process.
func (ex *Executor) Run(line string) Result {
	var res Result
	pipeline := Parse(line)

	// prev holds the one live handle carried between segments: stdout of
	// stage i feeds stdin of stage i+1, so nothing older than the previous
	// stage is ever needed.
	var prev *stage

	for i, spec := range pipeline {
		last := i == len(pipeline)-1

		// An empty segment means the user submitted a blank line (or a
		// stray pipe); drop the whole pipeline without complaint.
		if spec.Empty() {
			if prev != nil {
				prev.discard()
				prev = nil
			}
			res.Aborted = true
			res.skipRemaining(pipeline[i+1:])
			return res
		}

		if IsBuiltin(spec.Program) {
			var done bool
			if prev, done = ex.builtin(spec, prev, &res); done {
				return res
			}
			continue
		}

		next, sr := ex.spawn(spec, prev, last)
		prev = next
		res.Stages = append(res.Stages, sr)

		if sr.Kind == StageBroken && ex.strictPipes && !last {
			res.Aborted = true
			res.skipRemaining(pipeline[i+1:])
			return res
		}
	}

	// Block on the terminal stage so the caller doesn't prompt again until
	// the pipeline's visible output is complete.
	if prev != nil {
		code, err := prev.wait()
		if err != nil {
			fmt.Fprintln(ex.io.Err, err)
		} else if code != 0 {
			fmt.Fprintf(ex.io.Err, "%d ", code)
		}
		res.Code = code
	}
	return res
}

// spawn starts one external stage. Its stdin is the previous stage's output
// when there is one (ownership of that stream moves into the child) and the
// interpreter's own stdin otherwise. Its stdout is a fresh pipe when another
// segment follows and the interpreter's own stdout when it is last. On spawn
// failure the stage is reported and treated as absent: the returned handle
// is nil so the next stage reconnects to the interpreter's stdin.
func (ex *Executor) spawn(spec CommandSpec, prev *stage, last bool) (*stage, StageResult) {
	sr := StageResult{Spec: spec, Kind: StageSpawned}

	var stdin io.Reader = ex.io.In
	var fromPrev *os.File
	if prev != nil {
		if fromPrev = prev.handoff(); fromPrev != nil {
			stdin = fromPrev
		}
	}

	cmd := exec.Command(spec.Program, spec.Args...)
	cmd.Stdin = stdin
	cmd.Stderr = ex.io.Err

	var pipeR, pipeW *os.File
	if last {
		cmd.Stdout = ex.io.Out
	} else {
		var err error
		pipeR, pipeW, err = os.Pipe()
		if err != nil {
			fmt.Fprintln(ex.io.Err, err)
			if fromPrev != nil {
				fromPrev.Close()
			}
			sr.Kind, sr.Err = StageBroken, err
			return nil, sr
		}
		cmd.Stdout = pipeW
	}

	err := cmd.Start()

	// The child holds duplicates of any descriptors it was given, so the
	// parent-side copies close here no matter how Start fared. Keeping the
	// write end open would rob the next stage of its EOF.
	if pipeW != nil {
		pipeW.Close()
	}
	if fromPrev != nil {
		fromPrev.Close()
	}

	if err != nil {
		fmt.Fprintln(ex.io.Err, err)
		if pipeR != nil {
			pipeR.Close()
		}
		sr.Kind, sr.Err = StageBroken, err
		return nil, sr
	}

	return &stage{cmd: cmd, out: pipeR}, sr
}

func (r *Result) skipRemaining(rest []CommandSpec) {
	for _, spec := range rest {
		r.Stages = append(r.Stages, StageResult{Spec: spec, Kind: StageSkipped})
	}
}
