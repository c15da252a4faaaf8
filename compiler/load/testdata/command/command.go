package command

import (
	"io"
	"time"
)

// Command describes a process to spawn.
//
// +builder
type Command struct {
	Executable string
	// +builder(each = "arg")
	Args []string
	// +builder(each = "env")
	Env        []string
	CurrentDir *string
	Timeout    time.Duration
	Stdout     io.Writer // optional
}

// Unmarked is ignored unless named explicitly.
type Unmarked struct {
	Name string
}
