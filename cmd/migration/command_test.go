package main

import (
	"errors"
	"testing"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want command
	}{
		{name: "up applies everything", args: []string{"up"}, want: command{name: "up"}},
		{name: "up with steps", args: []string{"up", "2"}, want: command{name: "up", steps: 2}},
		{name: "version", args: []string{"version"}, want: command{name: "version"}},
		{name: "down defaults to one step", args: []string{"down"}, want: command{name: "down", steps: 1}},
		{name: "down with steps", args: []string{"DOWN", "3"}, want: command{name: "down", steps: 3}},
		{name: "force", args: []string{"force", "1771776034"}, want: command{name: "force", version: 1771776034}},
		{name: "force clean", args: []string{"force", "-1"}, want: command{name: "force", version: -1}},
		{name: "migrate alias", args: []string{"migrate", "7"}, want: command{name: "goto", target: 7}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseCommand(tc.args)
			if err != nil {
				t.Fatalf("parse %v: %v", tc.args, err)
			}
			if got != tc.want {
				t.Fatalf("parse %v = %+v, want %+v", tc.args, got, tc.want)
			}
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"down", "0"},
		{"up", "0"},
		{"up", "two"},
		{"up", "1", "2"},
		{"version", "3"},
		{"down", "many"},
		{"force"},
		{"force", "-2"},
		{"goto", "-1"},
	} {
		if _, err := parseCommand(args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}

	for _, args := range [][]string{nil, {"sideways"}} {
		if _, err := parseCommand(args); !errors.Is(err, errUsage) {
			t.Fatalf("expected usage error for %v, got %v", args, err)
		}
	}
}
