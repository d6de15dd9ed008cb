package command

import (
	"context"
	"testing"
	"time"
	"wiwbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResponder struct {
	command string
}

func (m *MockResponder) Respond(_ context.Context, _ time.Duration, _ *domain.Message) error {
	return nil
}

func (m *MockResponder) GetCommand() string {
	return m.command
}

func TestRegister(t *testing.T) {
	cr := &Registry{}
	mr := &MockResponder{command: "!wiw"}

	cr.Register(mr)
	assert.Len(t, cr.commands, 1)
}

func TestGetNotRegistered(t *testing.T) {
	cr := &Registry{}

	_, err := cr.Get("!wiw")
	require.EqualError(t, err, "can't fetch command, registry not initialized")
}

func TestGetCommandNotFound(t *testing.T) {
	cr := &Registry{}
	mr := &MockResponder{command: "!wiw"}

	cr.Register(mr)
	assert.Len(t, cr.commands, 1)

	_, err := cr.Get("!foo")
	require.EqualError(t, err, "command not found")
}

func TestGetCommandFound(t *testing.T) {
	cr := &Registry{}
	mr := &MockResponder{command: "!WIW"}

	cr.Register(mr)
	assert.Len(t, cr.commands, 1)

	cmd, err := cr.Get("!wiw")
	require.NoError(t, err)
	assert.NotNil(t, cmd)

	assert.Equal(t, "!WIW", cmd.GetCommand())
}

func TestListCommands(t *testing.T) {
	cr := &Registry{}
	mr1 := &MockResponder{command: "!wiw"}
	mr2 := &MockResponder{command: "!bar"}

	cr.Register(mr1)
	cr.Register(mr2)
	assert.Len(t, cr.commands, 2)

	list := cr.ListCommands()

	assert.Len(t, list, 2)
	assert.Contains(t, list, "!wiw")
	assert.Contains(t, list, "!bar")
}

func TestParseCommandArgs(t *testing.T) {
	type TestCase struct {
		description string
		args        string
		want        string
	}

	testCases := []TestCase{
		{
			description: "should discard first word",
			args:        "!wiw help",
			want:        "help",
		},
		{
			description: "should only discard first word",
			args:        "!wiw set ecs http://x",
			want:        "set ecs http://x",
		},
		{
			description: "empty on no args",
			args:        "!wiw",
			want:        "",
		},
		{
			description: "empty on no input",
			args:        "",
			want:        "",
		},
		{
			description: "collapses whitespace and newlines",
			args:        "!wiw\nset   ecs\thttp://x",
			want:        "set ecs http://x",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			got := ParseCommandArgs(testCase.args)

			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestParseCommand(t *testing.T) {
	type TestCase struct {
		description string
		args        string
		want        string
	}

	testCases := []TestCase{
		{
			description: "should return first word",
			args:        "!wiw",
			want:        "!wiw",
		},
		{
			description: "should discard following words",
			args:        "!wiw set ecs",
			want:        "!wiw",
		},
		{
			description: "should lowercase",
			args:        "!WiW help",
			want:        "!wiw",
		},
		{
			description: "empty on no input",
			args:        "",
			want:        "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			got := ParseCommand(testCase.args)

			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestTokenize(t *testing.T) {
	type TestCase struct {
		description    string
		args           string
		wantSubcommand string
		wantBody       []string
		wantErr        bool
	}

	testCases := []TestCase{
		{
			description: "no arguments",
			args:        "",
		},
		{
			description:    "subcommand only",
			args:           "help",
			wantSubcommand: "help",
			wantBody:       []string{},
		},
		{
			description:    "subcommand and body",
			args:           "set ecs http://x token",
			wantSubcommand: "set",
			wantBody:       []string{"ecs", "http://x", "token"},
		},
		{
			description:    "collapses repeated spaces",
			args:           "  set   ecs  http://x",
			wantSubcommand: "set",
			wantBody:       []string{"ecs", "http://x"},
		},
		{
			description: "short flag",
			args:        "-h",
			wantErr:     true,
		},
		{
			description: "long flag in body",
			args:        "set --verbose",
			wantErr:     true,
		},
		{
			description:    "lone dash is a value",
			args:           "set ecs -",
			wantSubcommand: "set",
			wantBody:       []string{"ecs", "-"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			subcommand, body, err := Tokenize(testCase.args)
			if testCase.wantErr {
				require.ErrorIs(t, err, ErrFlagArgument)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.wantSubcommand, subcommand)
			assert.Equal(t, testCase.wantBody, body)
		})
	}
}
