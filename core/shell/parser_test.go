package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		line string
		want []CommandSpec
	}{
		{
			name: "empty line",
			line: "",
			want: []CommandSpec{{}},
		},
		{
			name: "blank line",
			line: " \t  ",
			want: []CommandSpec{{}},
		},
		{
			name: "bare command",
			line: "ls",
			want: []CommandSpec{{Program: "ls"}},
		},
		{
			name: "command with args",
			line: "ls -l /tmp",
			want: []CommandSpec{{Program: "ls", Args: []string{"-l", "/tmp"}}},
		},
		{
			name: "surrounding whitespace trimmed",
			line: "  echo hi \t",
			want: []CommandSpec{{Program: "echo", Args: []string{"hi"}}},
		},
		{
			name: "interior whitespace collapsed",
			line: "echo  a\t b",
			want: []CommandSpec{{Program: "echo", Args: []string{"a", "b"}}},
		},
		{
			name: "two stages",
			line: "ls | wc",
			want: []CommandSpec{{Program: "ls"}, {Program: "wc"}},
		},
		{
			name: "pipe without spaces",
			line: "ls|wc -l",
			want: []CommandSpec{{Program: "ls"}, {Program: "wc", Args: []string{"-l"}}},
		},
		{
			name: "three stages",
			line: "cat f | sort | uniq -c",
			want: []CommandSpec{
				{Program: "cat", Args: []string{"f"}},
				{Program: "sort"},
				{Program: "uniq", Args: []string{"-c"}},
			},
		},
		{
			name: "empty middle segment",
			line: "ls | | wc",
			want: []CommandSpec{{Program: "ls"}, {}, {Program: "wc"}},
		},
		{
			name: "trailing pipe",
			line: "ls |",
			want: []CommandSpec{{Program: "ls"}, {}},
		},
		{
			name: "leading pipe",
			line: "| wc",
			want: []CommandSpec{{}, {Program: "wc"}},
		},
		{
			name: "lone pipe",
			line: "|",
			want: []CommandSpec{{}, {}},
		},
		{
			name: "no quoting",
			line: `echo "a | b"`,
			want: []CommandSpec{
				{Program: "echo", Args: []string{`"a`}},
				{Program: `b"`},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.line))
		})
	}
}

func TestCommandSpecEmpty(t *testing.T) {
	assert.True(t, CommandSpec{}.Empty())
	assert.False(t, CommandSpec{Program: "ls"}.Empty())
}
