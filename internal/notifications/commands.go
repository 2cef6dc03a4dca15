package notifications

import "strings"

// Command is one recognized free-text instruction from a chat member.
type Command string

// Free-text commands. Menu labels map to the same commands as the slash
// forms so a courier can type either.
const (
	CommandQueue   Command = "queue"
	CommandEndChat Command = "endchat"
	CommandHelp    Command = "help"
)

func commandTable() map[string]Command {
	return map[string]Command{
		"/queue":   CommandQueue,
		"/file":    CommandQueue,
		"file":     CommandQueue,
		"ma file":  CommandQueue,
		"/fin":     CommandEndChat,
		"fin":      CommandEndChat,
		"terminer": CommandEndChat,
		"/aide":    CommandHelp,
		"/help":    CommandHelp,
		"aide":     CommandHelp,
	}
}

// LookupCommand normalizes free text and resolves it against the command
// table. Bot-mention suffixes ("/file@SomeBot") are stripped before lookup.
// Text that is not a command returns false; in a conversation such text is
// relay content, outside one it is dropped.
func LookupCommand(text string) (Command, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if at := strings.Index(normalized, "@"); at > 0 && strings.HasPrefix(normalized, "/") {
		normalized = normalized[:at]
	}

	cmd, ok := commandTable()[normalized]
	return cmd, ok
}
