package events

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLines(&buf)

	session := log.NewSession()
	require.Nil(t, session.Record(SessionStart{Interactive: true, Version: "0.1"}))
	require.Nil(t, session.Record(PipelineRun{
		Line: "echo hi | tr h H",
		Stages: []StageRecord{
			{Program: "echo", Kind: "spawned"},
			{Program: "tr", Kind: "spawned"},
		},
	}))
	require.Nil(t, session.Record(PipelineRun{
		Line: "false",
		Stages: []StageRecord{
			{Program: "false", Kind: "spawned"},
		},
		Code: 1,
	}))
	require.Nil(t, session.Record(PipelineRun{
		Line: "nope | cat",
		Stages: []StageRecord{
			{Program: "nope", Kind: "broken", Error: "not found"},
			{Program: "cat", Kind: "spawned"},
		},
	}))
	require.Nil(t, session.Record(PipelineRun{
		Line: "version",
		Stages: []StageRecord{
			{Program: "version", Kind: "builtin"},
		},
	}))
	require.Nil(t, session.Record(PipelineRun{
		Line:    "echo a | | echo b",
		Aborted: true,
		Stages: []StageRecord{
			{Program: "echo", Kind: "spawned"},
			{Program: "echo", Kind: "skipped"},
		},
	}))
	require.Nil(t, session.Record(SessionEnd{Reason: "eof"}))

	report := NewReport()
	require.Nil(t, ReadJSONLines(&buf, report.Update))

	assert.Equal(t, 7, report.LogEntries)
	assert.Equal(t, 1, report.Sessions.Started)
	assert.Equal(t, 1, report.Sessions.Ended)
	assert.Equal(t, 1, report.Sessions.EndReasons.Count("eof"))

	assert.Equal(t, 5, report.Pipelines.Lines)
	assert.Equal(t, 1, report.Pipelines.Aborted)
	assert.Equal(t, 2, report.Pipelines.Programs.Count("echo"), "skipped stages aren't counted as run")
	assert.Equal(t, 1, report.Pipelines.Programs.Count("cat"))
	assert.Equal(t, 1, report.Pipelines.Programs.Count("nope"))
	assert.Equal(t, 1, report.Pipelines.Builtins.Count("version"))
	assert.Equal(t, 1, report.Pipelines.ExitCodes.Count("1"))
	assert.Equal(t, 3, report.Pipelines.ExitCodes.Count("0"))
}

func TestReportMarshalsToYAML(t *testing.T) {
	report := NewReport()
	report.Update(&Entry{
		TimestampMicros: 1,
		SessionID:       "s",
		PipelineRun: &PipelineRun{
			Line: "nope",
			Stages: []StageRecord{
				{Program: "nope", Kind: "broken", Error: "not found"},
			},
		},
	})

	out, err := yaml.Marshal(report)
	require.Nil(t, err)

	text := string(out)
	assert.True(t, strings.Contains(text, "pipeline_report"), text)
	assert.True(t, strings.Contains(text, "broken_stages"), text)
	assert.True(t, strings.Contains(text, "nope"), text)
}

func TestStrCounter(t *testing.T) {
	var ctr StrCounter
	ctr.Increment("a")
	ctr.Increment("b")
	ctr.Increment("a")

	assert.Equal(t, 2, ctr.Count("a"))
	assert.Equal(t, 1, ctr.Count("b"))
	assert.Equal(t, 0, ctr.Count("missing"))

	out, err := ctr.MarshalJSON()
	require.Nil(t, err)
	assert.JSONEq(t, `{"a": 2, "b": 1}`, string(out))
}

func TestPathCounter(t *testing.T) {
	ctr := NewPathCounter("program", "error")
	ctr.Increment("nope", "not found")
	ctr.Increment("nope", "not found")
	ctr.Increment("bad", "permission denied")

	out, err := ctr.MarshalJSON()
	require.Nil(t, err)
	assert.JSONEq(t, `[
		{"count": 2, "event": {"program": "nope", "error": "not found"}},
		{"count": 1, "event": {"program": "bad", "error": "permission denied"}}
	]`, string(out))

	assert.Panics(t, func() { ctr.Increment("only-one-column") })
}
