package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"wiwbot/internal/core/domain"
	"wiwbot/internal/core/port"
	"wiwbot/internal/core/service"

	"github.com/rs/zerolog"
)

const helpTemplate = `%[1]s - outputs the information for what is deployed where.
%[1]s set <format> <url> [api token] Set the format and URL to use for the current channel.
    <format> One of the following formats: (%[2]s)
    <url> Url to the what-is-where endpoint
    [api token] (optional)
`

const (
	notSetUp       = "This channel has not yet been setup, use %s set.\n"
	runSetAgain    = "Something went wrong, try running %s set again."
	upstreamFailed = "Error; Got response: %s"
	missingArgs    = "<format> and <url> are required\n"
	badFormat      = "Format not supported. Choose one of: %s"
	unknownCommand = "Unknown command %q.\n"
	configured     = "Configuration updated."
	emptyReport    = "Nothing is deployed."
)

// NotifyTimeout bounds the error notification sent after a failed command.
const NotifyTimeout = 10 * time.Second

type Wiw struct {
	endpoints  service.WhatIsWhere
	textSender port.TextSender
	command    string
	help       string
}

type WiwParams struct {
	Endpoints  service.WhatIsWhere
	TextSender port.TextSender
	Command    string
}

func NewWiw(p WiwParams) *Wiw {
	formats := make([]string, len(domain.SupportedFormats))
	for i, f := range domain.SupportedFormats {
		formats[i] = string(f)
	}

	return &Wiw{
		endpoints:  p.Endpoints,
		textSender: p.TextSender,
		command:    p.Command,
		help:       fmt.Sprintf(helpTemplate, p.Command, strings.Join(formats, ", ")),
	}
}

func (w *Wiw) GetCommand() string {
	return w.command
}

// Help returns the usage text shown for help requests and most user errors.
func (w *Wiw) Help() string {
	return w.help
}

func (w *Wiw) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := zerolog.Ctx(ctx)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	go w.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	reply, err := w.Reply(ctx, message)
	if err != nil {
		// the command deadline may already be spent, the chat still has to learn about the failure
		notifyCtx, cancelNotify := context.WithTimeout(context.WithoutCancel(ctx), NotifyTimeout)
		defer cancelNotify()

		return w.textSender.NotifyAndReturnError(notifyCtx, err, message)
	}

	_, err = w.textSender.SendMessageReply(ctx, message, reply)
	if err != nil {
		l.Error().Err(err).Msg(domain.ErrSendingReplyFailed.Error())
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

// Reply computes the answer to message. User mistakes and unconfigured rooms are answered with text; only
// infrastructure failures are returned as errors.
func (w *Wiw) Reply(ctx context.Context, message *domain.Message) (string, error) {
	subcommand, body, err := Tokenize(ParseCommandArgs(message.Text))
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("rejected arguments")
		return w.help, nil
	}

	switch subcommand {
	case "":
		return w.status(ctx, message.Room())
	case "help":
		return w.help, nil
	case "set":
		return w.set(ctx, message.Room(), body)
	default:
		return fmt.Sprintf(unknownCommand, subcommand) + w.help, nil
	}
}

func (w *Wiw) status(ctx context.Context, room string) (string, error) {
	report, err := w.endpoints.Status(ctx, room)

	var upstream *domain.UpstreamError

	switch {
	case errors.Is(err, domain.ErrEndpointNotFound):
		return fmt.Sprintf(notSetUp, w.command) + w.help, nil
	case errors.Is(err, domain.ErrNoReporter):
		return fmt.Sprintf(runSetAgain, w.command), nil
	case errors.As(err, &upstream):
		return fmt.Sprintf(upstreamFailed, upstream.Body), nil
	case err != nil:
		return "", fmt.Errorf("failed to fetch deployments: %w", err)
	}

	if report == "" {
		return emptyReport, nil
	}

	return report, nil
}

func (w *Wiw) set(ctx context.Context, room string, body []string) (string, error) {
	_, err := w.endpoints.Configure(ctx, room, body)

	switch {
	case errors.Is(err, domain.ErrMissingArguments):
		return missingArgs + w.help, nil
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return fmt.Sprintf(badFormat, domain.FormatList()), nil
	case err != nil:
		return "", fmt.Errorf("failed to configure endpoint: %w", err)
	}

	return configured, nil
}
