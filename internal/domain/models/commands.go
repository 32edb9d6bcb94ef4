package models

import "strings"

// CommandType enumerates supported chat command categories.
type CommandType string

const (
	CommandIncome   CommandType = "income"
	CommandReport   CommandType = "report"
	CommandEmployee CommandType = "employee"
	CommandTrend    CommandType = "trend"
	CommandHelp     CommandType = "help"
	CommandUnknown  CommandType = "unknown"
)

// Command represents a parsed chat instruction extracted from WhatsApp text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command instance from free-form text messages.
func ParseCommand(message string) Command {
	normalized := strings.TrimSpace(strings.ToLower(message))

	if normalized == "" {
		return Command{Type: CommandUnknown, Raw: message}
	}

	tokens := strings.Fields(normalized)
	cmd := Command{Raw: message}

	head := strings.TrimPrefix(tokens[0], "/")
	switch head {
	case string(CommandIncome):
		cmd.Type = CommandIncome
	case string(CommandReport):
		cmd.Type = CommandReport
	case string(CommandEmployee):
		cmd.Type = CommandEmployee
	case string(CommandTrend):
		cmd.Type = CommandTrend
	case string(CommandHelp):
		cmd.Type = CommandHelp
	default:
		cmd.Type = CommandUnknown
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
