package main

import (
	"fmt"
	"strconv"
	"strings"
)

type command struct {
	name    string
	// steps is 0 for "up" without a count, which applies everything pending.
	steps   int
	version int
	target  uint
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, errUsage
	}

	cmd := command{name: strings.ToLower(strings.TrimSpace(args[0]))}
	rest := args[1:]

	var err error
	switch cmd.name {
	case "version":
		if len(rest) > 0 {
			return command{}, fmt.Errorf("version takes no arguments")
		}
	case "up":
		cmd.steps, err = parseSteps(cmd.name, rest, 0)
	case "down":
		cmd.steps, err = parseSteps(cmd.name, rest, 1)
	case "force":
		if len(rest) == 0 {
			return command{}, fmt.Errorf("force requires a version argument")
		}
		cmd.version, err = parseVersion(rest[0])
	case "goto", "migrate":
		if len(rest) == 0 {
			return command{}, fmt.Errorf("goto requires a target version argument")
		}
		cmd.name = "goto"
		cmd.target, err = parseTarget(rest[0])
	default:
		return command{}, errUsage
	}
	if err != nil {
		return command{}, err
	}

	return cmd, nil
}

func parseSteps(name string, args []string, fallback int) (int, error) {
	switch len(args) {
	case 0:
		return fallback, nil
	case 1:
	default:
		return 0, fmt.Errorf("%s takes at most one step count", name)
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid %s steps %q: %w", name, args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("%s steps must be > 0", name)
	}

	return steps, nil
}

// parseVersion bounds the value to int since migrate.Force takes an int.
func parseVersion(raw string) (int, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < -1 {
		return 0, fmt.Errorf("version must be >= -1")
	}
	if value > int64(^uint(0)>>1) {
		return 0, fmt.Errorf("version is too large for this platform")
	}

	return int(value), nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}
