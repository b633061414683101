// Package command parses raw player input into primitive steps. Parsing is
// pure: resolving names, exits, and reply targets is the session's job.
package command

import (
	"strings"

	mkerr "github.com/thornvale/mud/internal/errors"
)

// Step is one primitive action. Multi-step commands yield several steps that
// the session executes one per message turn.
type Step struct {
	Verb string
	Args []string
}

// Command is the parsed form of one input line.
type Command struct {
	Name  string
	Steps []Step
}

// MultiStep reports whether the command must go through the continuation
// queue.
func (c *Command) MultiStep() bool {
	return len(c.Steps) > 1
}

var directions = map[string]string{
	"n": "north", "north": "north",
	"s": "south", "south": "south",
	"e": "east", "east": "east",
	"w": "west", "west": "west",
	"u": "up", "up": "up",
	"d": "down", "down": "down",
}

// Parse turns a raw line into a command or an error suitable for echoing back
// to the player.
func Parse(raw string) (*Command, error) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil, mkerr.InvalidArgument("say something?")
	}

	// 'text is shorthand for say text.
	if strings.HasPrefix(line, "'") {
		return say(strings.TrimSpace(line[1:]))
	}

	fields := strings.Fields(line)
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	if dir, ok := directions[verb]; ok {
		return &Command{Name: "move", Steps: []Step{{Verb: "move", Args: []string{dir}}}}, nil
	}

	switch verb {
	case "run":
		return parseRun(args)

	case "say":
		return say(strings.Join(args, " "))

	case "tell":
		if len(args) < 2 {
			return nil, mkerr.InvalidArgument("Usage: tell <who> <message>")
		}
		return single("tell", args[0], strings.Join(args[1:], " ")), nil

	case "reply":
		if len(args) == 0 {
			return nil, mkerr.InvalidArgument("Reply with what?")
		}
		return single("reply", strings.Join(args, " ")), nil

	case "chat":
		if len(args) < 2 {
			return nil, mkerr.InvalidArgument("Usage: chat <channel> <message>")
		}
		return single("chat", strings.ToLower(args[0]), strings.Join(args[1:], " ")), nil

	case "join":
		if len(args) != 1 {
			return nil, mkerr.InvalidArgument("Usage: join <channel>")
		}
		return single("join", strings.ToLower(args[0])), nil

	case "leave":
		if len(args) != 1 {
			return nil, mkerr.InvalidArgument("Usage: leave <channel>")
		}
		return single("leave", strings.ToLower(args[0])), nil

	case "attack", "kill":
		if len(args) == 0 {
			return nil, mkerr.InvalidArgument("Attack whom?")
		}
		return single("attack", strings.Join(args, " ")), nil

	case "cast":
		if len(args) < 2 {
			return nil, mkerr.InvalidArgument("Usage: cast <spell> <target>")
		}
		return single("cast", strings.ToLower(args[0]), strings.Join(args[1:], " ")), nil

	case "look", "l":
		return single("look"), nil

	case "who":
		return single("who"), nil

	case "score", "sc":
		return single("score"), nil

	case "channels":
		return single("channels"), nil

	case "afk":
		return single("afk"), nil

	case "quit":
		return single("quit"), nil
	}

	return nil, mkerr.InvalidArgumentf("Huh? '%s' is not a command.", verb)
}

// parseRun decomposes multi-tile movement: either compact letters ("run nne")
// or direction words ("run north north east").
func parseRun(args []string) (*Command, error) {
	if len(args) == 0 {
		return nil, mkerr.InvalidArgument("Run where?")
	}

	var steps []Step
	for _, arg := range args {
		arg = strings.ToLower(arg)
		if dir, ok := directions[arg]; ok {
			steps = append(steps, Step{Verb: "move", Args: []string{dir}})
			continue
		}

		// Compact form: each letter is one tile.
		for _, r := range arg {
			dir, ok := directions[string(r)]
			if !ok {
				return nil, mkerr.InvalidArgumentf("Run where? '%c' is not a direction.", r)
			}
			steps = append(steps, Step{Verb: "move", Args: []string{dir}})
		}
	}

	if len(steps) == 0 {
		return nil, mkerr.InvalidArgument("Run where?")
	}
	return &Command{Name: "run", Steps: steps}, nil
}

func say(text string) (*Command, error) {
	if text == "" {
		return nil, mkerr.InvalidArgument("Say what?")
	}
	return single("say", text), nil
}

func single(verb string, args ...string) *Command {
	return &Command{Name: verb, Steps: []Step{{Verb: verb, Args: args}}}
}
