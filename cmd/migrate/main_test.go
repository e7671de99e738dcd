package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want command
	}{
		{"default is up", nil, command{name: "up"}},
		{"explicit up", []string{"up"}, command{name: "up"}},
		{"down", []string{"down"}, command{name: "down"}},
		{"force with version", []string{"force", "3"}, command{name: "force", version: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommand(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommandRejectsBadInput(t *testing.T) {
	for _, args := range [][]string{
		{"sideways"},
		{"force"},
		{"force", "three"},
	} {
		_, err := parseCommand(args)
		assert.Error(t, err, "args %v", args)
	}
}
