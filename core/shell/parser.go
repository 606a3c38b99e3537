package shell

import "strings"

// CommandSpec is a single pipe-segment of an input line: the program to run
// and the arguments to hand it. A spec with an empty Program comes from a
// segment that contained no tokens and tells the executor to abandon the
// whole pipeline; see Executor.Run.
type CommandSpec struct {
	Program string
	Args    []string
}

// Empty reports whether the segment held no tokens at all.
func (c CommandSpec) Empty() bool {
	return c.Program == ""
}

// Parse splits one raw input line into its pipeline of command specs.
//
// The pipe character delimits segments and runs of whitespace delimit tokens
// within a segment; the first token of a segment names the program, the rest
// are its arguments. There is no quoting or escaping: a literal '|' is
// always a pipeline delimiter. Segment order is data-flow order.
func Parse(line string) []CommandSpec {
	segments := strings.Split(strings.TrimSpace(line), "|")

	pipeline := make([]CommandSpec, 0, len(segments))
	for _, segment := range segments {
		tokens := strings.Fields(segment)
		if len(tokens) == 0 {
			pipeline = append(pipeline, CommandSpec{})
			continue
		}
		spec := CommandSpec{Program: tokens[0]}
		if len(tokens) > 1 {
			spec.Args = tokens[1:]
		}
		pipeline = append(pipeline, spec)
	}
	return pipeline
}
