package core

import "strings"

// Command is a classified instruction for the engine. Both the gravity
// ticker and player input produce Commands; the engine never sees raw input.
type Command int

const (
	CommandIgnored Command = iota // unrecognized input, never enqueued
	CommandRotate                 // w
	CommandLeft                   // a
	CommandRight                  // d
	CommandDown                   // s
	CommandTick                   // gravity step
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandIgnored:
		return "Ignored"
	case CommandRotate:
		return "Rotate"
	case CommandLeft:
		return "Left"
	case CommandRight:
		return "Right"
	case CommandDown:
		return "Down"
	case CommandTick:
		return "Tick"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the command is a player move (translation or rotation).
func (c Command) IsMove() bool {
	switch c {
	case CommandRotate, CommandLeft, CommandRight, CommandDown:
		return true
	}
	return false
}

// ClassifyRune maps a single input character to a Command.
// Anything outside the control set is CommandIgnored.
func ClassifyRune(r rune) Command {
	switch r {
	case 'a':
		return CommandLeft
	case 's':
		return CommandDown
	case 'd':
		return CommandRight
	case 'w':
		return CommandRotate
	}
	return CommandIgnored
}

// ClassifyLine maps one line of text input to a Command. Surrounding
// whitespace is trimmed; the remainder must be exactly one control character.
// Blank lines classify as CommandIgnored.
func ClassifyLine(line string) Command {
	line = strings.TrimSpace(line)
	runes := []rune(line)
	if len(runes) != 1 {
		return CommandIgnored
	}
	return ClassifyRune(runes[0])
}
