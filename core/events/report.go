package events

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// ReadJSONLines parses a newline delimited JSON event log, calling handler
// for each entry in order.
func ReadJSONLines(r io.Reader, handler func(e *Entry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var entry Entry
		if err := decoder.Decode(&entry); err != nil {
			return err
		}
		handler(&entry)
	}
	return nil
}

// NewReport creates an empty Report ready for Update calls.
func NewReport() *Report {
	return &Report{
		Pipelines: PipelineReport{
			BrokenStages: NewPathCounter("program", "error"),
		},
	}
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	Sessions  SessionReport  `json:"session_report"`
	Pipelines PipelineReport `json:"pipeline_report"`
}

// Update folds one entry into the report.
func (r *Report) Update(e *Entry) {
	r.LogEntries++

	switch event := e.Payload().(type) {
	case SessionStart:
		r.Sessions.started(event)
	case SessionEnd:
		r.Sessions.ended(event)
	case PipelineRun:
		r.Pipelines.update(event)
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%T", event))
	}
}

// SessionReport summarizes session lifecycles.
type SessionReport struct {
	Started    int        `json:"started"`
	Ended      int        `json:"ended"`
	EndReasons StrCounter `json:"end_reasons"`
}

func (r *SessionReport) started(SessionStart) {
	r.Started++
}

func (r *SessionReport) ended(e SessionEnd) {
	r.Ended++
	r.EndReasons.Increment(e.Reason)
}

// PipelineReport summarizes interpreted lines.
type PipelineReport struct {
	// Lines counts interpreted input lines, including blank ones.
	Lines int `json:"lines"`
	// Aborted counts lines dropped because of an empty segment.
	Aborted int `json:"aborted"`
	// Programs counts external commands by name.
	Programs StrCounter `json:"programs"`
	// Builtins counts built-in commands by name.
	Builtins StrCounter `json:"builtins"`
	// ExitCodes counts the final stage statuses of completed pipelines.
	ExitCodes StrCounter `json:"exit_codes"`
	// BrokenStages counts stages that failed to spawn, by program and error.
	BrokenStages *PathCounter `json:"broken_stages"`
}

func (r *PipelineReport) update(run PipelineRun) {
	r.Lines++
	if run.Aborted {
		r.Aborted++
	}
	for _, st := range run.Stages {
		switch st.Kind {
		case "builtin":
			r.Builtins.Increment(st.Program)
		case "broken":
			r.Programs.Increment(st.Program)
			r.BrokenStages.Increment(st.Program, st.Error)
		case "spawned":
			r.Programs.Increment(st.Program)
		}
	}
	if !run.Aborted && !run.Exited && len(run.Stages) > 0 {
		r.ExitCodes.Increment(fmt.Sprintf("%d", run.Code))
	}
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns how many times the key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implements a custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

// NewPathCounter creates a counter over tuples with the given column names.
func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of string tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given tuple.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// MarshalJSON implements a custom JSON marshaler that renders tuples most
// frequent first.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
