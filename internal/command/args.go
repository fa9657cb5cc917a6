package command

import (
	"regexp"

	"github.com/emiliskiskis/mafia-bot/internal/game"
)

// errSyntax rejects arguments that don't match a command's declared shape.
var errSyntax = game.Validationf("wrong command syntax")

// Mention syntax as it arrives from the chat surface.
var (
	userMentionRe = regexp.MustCompile(`^<@!?(\d+)>$`)
	roleMentionRe = regexp.MustCompile(`^<@&(\d+)>$`)
)

func parseUserMention(arg string) (string, bool) {
	m := userMentionRe.FindStringSubmatch(arg)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func parseRoleMention(arg string) (string, bool) {
	m := roleMentionRe.FindStringSubmatch(arg)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func mentionUser(id string) string    { return "<@!" + id + ">" }
func mentionChannel(id string) string { return "<#" + id + ">" }
