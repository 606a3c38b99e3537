package shell

import (
	"fmt"
)

// Builtins lists the command names the executor handles itself instead of
// spawning. Pipe wiring differs per builtin: exit never returns, version
// leaves the in-flight stage output alone, cd consumes (and discards) it.
var Builtins = []string{"cd", "exit", "version"}

// IsBuiltin reports whether name is handled inside the interpreter.
func IsBuiltin(name string) bool {
	for _, b := range Builtins {
		if b == name {
			return true
		}
	}
	return false
}

// builtin dispatches one built-in segment. It returns the stage handle the
// pipeline walk should carry forward and whether the walk is over (only the
// exit built-in ends it).
func (ex *Executor) builtin(spec CommandSpec, prev *stage, res *Result) (*stage, bool) {
	switch spec.Program {
	case "exit":
		// Terminates the whole interpreter; children are deliberately not
		// cleaned up. Reached code below only with a fake Env.
		res.Stages = append(res.Stages, StageResult{Spec: spec, Kind: StageBuiltin})
		res.Exited = true
		ex.env.Exit(0)
		return prev, true

	case "version":
		// A no-op stage: prints the configured version and leaves any
		// previous stage untouched so a later segment can still consume its
		// output.
		fmt.Fprintln(ex.io.Out, ex.settings.Version)
		res.Stages = append(res.Stages, StageResult{Spec: spec, Kind: StageBuiltin})

	case "cd":
		// cd neither reads stdin nor writes stdout, so any in-flight stage
		// output has no consumer and is discarded.
		err := ex.chdir(spec.Args)
		if prev != nil {
			prev.discard()
			prev = nil
		}
		res.Stages = append(res.Stages, StageResult{Spec: spec, Kind: StageBuiltin, Err: err})
	}
	return prev, false
}

// chdir moves the interpreter's working directory to the first argument,
// falling back to $HOME and then to the filesystem root when no argument is
// given. Extra arguments are ignored. The error is reported here and also
// returned for the stage record.
func (ex *Executor) chdir(args []string) error {
	dir := "/"
	if home, ok := ex.env.LookupEnv("HOME"); ok {
		dir = home
	}
	if len(args) > 0 {
		dir = args[0]
	}
	if err := ex.env.Chdir(dir); err != nil {
		fmt.Fprintln(ex.io.Err, err)
		return err
	}
	return nil
}
