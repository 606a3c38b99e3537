package shell

import (
	"errors"
	"os"
	"os/exec"
)

// stage is the handle to the most recently spawned pipeline process together
// with the parent-held read end of its stdout pipe. out is nil when the
// process writes straight to the interpreter's stdout or once the read end
// has been handed to a consumer. The executor owns at most one stage at a
// time and must consume, discard, or wait every stage it creates so that no
// child is left unreaped and no pipe end is left dangling.
type stage struct {
	cmd *exec.Cmd
	out *os.File
}

// handoff transfers ownership of the stage's output stream to the caller and
// releases the process itself to a detached wait. The stage keeps running
// concurrently with the rest of the pipeline; only its reaping is deferred.
func (s *stage) handoff() *os.File {
	out := s.out
	s.out = nil
	go s.cmd.Wait()
	return out
}

// discard disposes of a stage whose output will never be consumed. Closing
// the read end first means a producer blocked on a full pipe gets EPIPE
// instead of wedging forever; the detached wait then reaps it.
func (s *stage) discard() {
	if s.out != nil {
		s.out.Close()
		s.out = nil
	}
	go s.cmd.Wait()
}

// wait blocks until the stage terminates and returns its exit status. If the
// stage was piped but nothing consumed its output, the read end is closed
// before blocking for the same reason as in discard. A status of zero with a
// non-nil error means the wait itself failed; killed-by-signal terminations
// carry no numeric status from the OS and default to 1.
func (s *stage) wait() (int, error) {
	if s.out != nil {
		s.out.Close()
		s.out = nil
	}

	err := s.cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			code = 1
		}
		return code, nil
	}
	return 0, err
}
