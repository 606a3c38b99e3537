package events

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLinesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLines(&buf)
	session := log.NewSession()

	require.Nil(t, session.Record(SessionStart{Interactive: true, Version: "0.1"}))
	require.Nil(t, session.Record(PipelineRun{
		Line: "echo hi | cat",
		Stages: []StageRecord{
			{Program: "echo", Kind: "spawned"},
			{Program: "cat", Kind: "spawned"},
		},
	}))
	require.Nil(t, session.Record(SessionEnd{Reason: "eof"}))

	var entries []*Entry
	require.Nil(t, ReadJSONLines(&buf, func(e *Entry) {
		entries = append(entries, e)
	}))
	require.Len(t, entries, 3)

	start, run, end := entries[0], entries[1], entries[2]

	require.NotNil(t, start.SessionStart)
	assert.True(t, start.SessionStart.Interactive)
	assert.Equal(t, "0.1", start.SessionStart.Version)

	require.NotNil(t, run.PipelineRun)
	assert.Equal(t, "echo hi | cat", run.PipelineRun.Line)
	assert.Len(t, run.PipelineRun.Stages, 2)

	require.NotNil(t, end.SessionEnd)
	assert.Equal(t, "eof", end.SessionEnd.Reason)

	assert.NotEmpty(t, start.SessionID)
	assert.Equal(t, start.SessionID, run.SessionID)
	assert.Equal(t, start.SessionID, end.SessionID)
	assert.NotZero(t, start.TimestampMicros)
}

func TestDistinctSessionIDs(t *testing.T) {
	log := NewNop()
	a := log.NewSession()
	b := log.NewSession()
	assert.NotEqual(t, a.sessionID, b.sessionID)
}

func TestNopSessionDiscards(t *testing.T) {
	assert.Nil(t, NopSession().Record(PipelineRun{Line: "ls"}))
}

func TestPayload(t *testing.T) {
	cases := []struct {
		name  string
		entry Entry
		want  Event
	}{
		{"empty", Entry{}, nil},
		{"start", Entry{SessionStart: &SessionStart{Interactive: true}}, SessionStart{Interactive: true}},
		{"end", Entry{SessionEnd: &SessionEnd{Reason: "read-error"}}, SessionEnd{Reason: "read-error"}},
		{"run", Entry{PipelineRun: &PipelineRun{Line: "ls"}}, PipelineRun{Line: "ls"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.entry.Payload())
		})
	}
}

func TestReadJSONLinesBadInput(t *testing.T) {
	err := ReadJSONLines(bytes.NewBufferString("{\"timestamp_micros\": 1}\nnot json\n"), func(e *Entry) {})
	assert.NotNil(t, err)
}
