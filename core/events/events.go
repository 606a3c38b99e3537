// Package events captures interpreter activity as newline delimited JSON so
// sessions can be studied after the fact without scraping terminal output.
package events

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	uuid "github.com/satori/go.uuid"
)

// Entry is one logged event. Exactly one of the payload fields is set.
type Entry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart *SessionStart `json:"session_start,omitempty"`
	SessionEnd   *SessionEnd   `json:"session_end,omitempty"`
	PipelineRun  *PipelineRun  `json:"pipeline_run,omitempty"`
}

// Payload returns whichever event payload the entry carries, or nil for
// entries written by a different (likely newer) build.
func (e *Entry) Payload() Event {
	switch {
	case e.SessionStart != nil:
		return *e.SessionStart
	case e.SessionEnd != nil:
		return *e.SessionEnd
	case e.PipelineRun != nil:
		return *e.PipelineRun
	default:
		return nil
	}
}

// Event is one kind of loggable payload.
type Event interface {
	attach(e *Entry)
}

// SessionStart marks an interpreter session beginning.
type SessionStart struct {
	Interactive bool   `json:"interactive"`
	Version     string `json:"version,omitempty"`
}

func (s SessionStart) attach(e *Entry) { e.SessionStart = &s }

// SessionEnd marks an interpreter session ending and why: "eof" when the
// input ran out, "read-error" when the line source failed. A session the
// exit built-in terminates has no end marker; the process is gone before
// anything can write one.
type SessionEnd struct {
	Reason string `json:"reason"`
}

func (s SessionEnd) attach(e *Entry) { e.SessionEnd = &s }

// PipelineRun records one interpreted line and what each segment did. Broken
// flags a line where some stage failed to spawn, so consumers can find
// disconnected pipelines without scanning stage kinds.
type PipelineRun struct {
	Line    string        `json:"line"`
	Stages  []StageRecord `json:"stages,omitempty"`
	Aborted bool          `json:"aborted,omitempty"`
	Broken  bool          `json:"broken,omitempty"`
	Exited  bool          `json:"exited,omitempty"`
	Code    int           `json:"code,omitempty"`
}

func (p PipelineRun) attach(e *Entry) { e.PipelineRun = &p }

// StageRecord is one pipe-segment within a PipelineRun.
type StageRecord struct {
	Program string `json:"program"`
	Kind    string `json:"kind"`
	Error   string `json:"error,omitempty"`
}

// RecordFunc is a callback that stores entries in an external datastore.
type RecordFunc func(e *Entry) error

// Log writes events somewhere. The zero value is not usable; construct with
// NewJSONLines or NewNop.
type Log struct {
	Record RecordFunc
}

// NewJSONLines creates a Log that appends one JSON object per line to w.
func NewJSONLines(w io.Writer) *Log {
	return &Log{
		Record: func(e *Entry) error {
			entry, err := json.Marshal(e)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNop creates a Log that drops everything, for when no log is configured.
func NewNop() *Log {
	return &Log{Record: func(e *Entry) error { return nil }}
}

// NewSession creates a logger whose entries share a fresh session ID.
func (l *Log) NewSession() *SessionLog {
	return &SessionLog{log: l, sessionID: uuid.NewV4().String()}
}

// NopSession returns a session logger that drops everything.
func NopSession() *SessionLog {
	return NewNop().NewSession()
}

// SessionLog stamps events with a shared session ID and the current time.
type SessionLog struct {
	log       *Log
	sessionID string
}

// Record timestamps and stores one event.
func (s *SessionLog) Record(event Event) error {
	e := &Entry{
		TimestampMicros: time.Now().UnixMicro(),
		SessionID:       s.sessionID,
	}
	event.attach(e)
	return s.log.Record(e)
}
