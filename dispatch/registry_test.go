package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgdesk/ticketbot/template"
)

func nopCommand(_ context.Context, _ *Context, _ Request) (Response, error) {
	return Response{}, nil
}

func nopButton(_ context.Context, _ *Context, _ Request, _ []string) (Response, error) {
	return Response{}, nil
}

func TestAddCommandDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.AddCommand(CommandSpec{Moniker: "/newrequest", Handler: nopCommand}))

	err := r.AddCommand(CommandSpec{Moniker: "/newrequest", Handler: nopCommand})
	assert.ErrorIs(t, err, ErrDuplicateMoniker)
}

func TestAddButtonDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.AddButton(ButtonSpec{Moniker: "accept", Handler: nopButton}))

	err := r.AddButton(ButtonSpec{Moniker: "accept", Handler: nopButton})
	assert.ErrorIs(t, err, ErrDuplicateMoniker)
}

func TestCommandLookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.AddCommand(CommandSpec{Moniker: "/newrequest", Handler: nopCommand}))

	_, ok := r.Command("/newrequest", "@ticketbot")
	assert.True(t, ok)

	// Addressed to this bot.
	_, ok = r.Command("/newrequest@ticketbot", "@ticketbot")
	assert.True(t, ok)

	// Addressed to another bot.
	_, ok = r.Command("/newrequest@otherbot", "@ticketbot")
	assert.False(t, ok)

	// Identity not yet known: only the bare form matches.
	_, ok = r.Command("/newrequest@ticketbot", "")
	assert.False(t, ok)

	_, ok = r.Command("/unknown", "@ticketbot")
	assert.False(t, ok)
}

func TestSplitButton(t *testing.T) {
	moniker, params := SplitButton("accept")
	assert.Equal(t, "accept", moniker)
	assert.Empty(t, params)

	moniker, params = SplitButton("done$42")
	assert.Equal(t, "done", moniker)
	assert.Equal(t, []string{"42"}, params)

	moniker, params = SplitButton("done$42$extra")
	assert.Equal(t, "done", moniker)
	assert.Equal(t, []string{"42", "extra"}, params)
}

func TestCommandsOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.AddCommand(CommandSpec{Moniker: "/b", Handler: nopCommand}))
	require.NoError(t, r.AddCommand(CommandSpec{Moniker: "/a", Handler: nopCommand}))

	specs := r.Commands()
	require.Len(t, specs, 2)
	assert.Equal(t, "/b", specs[0].Moniker)
	assert.Equal(t, "/a", specs[1].Moniker)
}

func TestBuildRegistryUsesTemplateLabels(t *testing.T) {
	tpl := template.Default()
	tpl.AcceptLabel = "Grab"

	r, err := BuildRegistry(tpl)
	require.NoError(t, err)

	spec, _, ok := r.Button("accept")
	require.True(t, ok)
	assert.Equal(t, "Grab", spec.Label)
}
