package command

import (
	"errors"
	"strings"
	"wiwbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Registry struct {
	commands map[string]port.Command
}

func (r *Registry) Register(handler port.Command) {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	log.Info().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	r.commands[strings.ToLower(handler.GetCommand())] = handler
}

func (r *Registry) Get(command string) (port.Command, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	if r.commands == nil {
		err := errors.New("can't fetch command, registry not initialized")
		return nil, err
	}

	handler, ok := r.commands[command]
	if !ok {
		return nil, errors.New("command not found")
	}

	return handler, nil
}

func (r *Registry) ListCommands() []string {
	keys := make([]string, len(r.commands))

	i := 0
	for k := range r.commands {
		keys[i] = k
		i++
	}

	return keys
}

// ParseCommandArgs drops the trigger word and joins the remaining words with single spaces.
func ParseCommandArgs(args string) string {
	command := strings.Fields(args)
	if len(command) < 2 {
		return ""
	}
	return strings.Join(command[1:], " ")
}

func ParseCommand(args string) string {
	command := strings.Fields(args)
	if len(command) == 0 {
		return ""
	}
	return strings.ToLower(command[0])
}

var ErrFlagArgument = errors.New("flag arguments are not supported")

// Tokenize splits command arguments into a subcommand and its body. Flag-like tokens ("-h", "--verbose") are
// rejected with ErrFlagArgument.
func Tokenize(args string) (string, []string, error) {
	tokens := strings.Fields(args)

	for _, token := range tokens {
		if len(token) > 1 && strings.HasPrefix(token, "-") {
			return "", nil, ErrFlagArgument
		}
	}

	if len(tokens) == 0 {
		return "", nil, nil
	}

	return strings.ToLower(tokens[0]), tokens[1:], nil
}
