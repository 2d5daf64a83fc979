package host_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/autoquote/pkg/adapters/memory"
	"github.com/aretw0/autoquote/pkg/domain"
	"github.com/aretw0/autoquote/pkg/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComposer(t *testing.T, s domain.Settings) (*host.Composer, *host.SettingsManager) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), domain.ExtensionName, s.Encode()))
	settings := host.NewSettingsManager(store)
	return host.NewComposer(settings), settings
}

func TestComposer_Submit(t *testing.T) {
	withMarkup := domain.DefaultSettings()
	withMarkup.AsteriskEnabled = true
	disabled := domain.DefaultSettings()
	disabled.Enabled = false

	tests := []struct {
		name     string
		settings domain.Settings
		input    string
		expected host.Submission
	}{
		{
			"Rewrite",
			domain.DefaultSettings(),
			"hello *waves* there",
			host.Submission{Text: `"hello" waves "there"`, Send: true, Enabled: true},
		},
		{
			"Rewrite With Markup",
			withMarkup,
			"hello *waves* there",
			host.Submission{Text: `"hello" *waves* "there"`, Send: true, Enabled: true},
		},
		{
			"Multi Line",
			withMarkup,
			"hi\n*sits*",
			host.Submission{Text: "\"hi\"\n*sits*", Send: true, Enabled: true},
		},
		{
			"Disabled Passes Through",
			disabled,
			"  hello *waves*  ",
			host.Submission{Text: "  hello *waves*  ", Send: true, Enabled: false},
		},
		{
			"Control Characters Stripped",
			domain.DefaultSettings(),
			"hi\x07",
			host.Submission{Text: `"hi"`, Send: true, Enabled: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newComposer(t, tt.settings)
			got, err := c.Submit(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestComposer_ToggleCommand(t *testing.T) {
	ctx := context.Background()
	c, settings := newComposer(t, domain.DefaultSettings())

	got, err := c.Submit(ctx, "  //aq \n")
	require.NoError(t, err)
	assert.Equal(t, host.Submission{Text: "", Send: false, Toggled: true, Enabled: false}, got)

	s, err := settings.Load(ctx)
	require.NoError(t, err)
	assert.False(t, s.Enabled, "toggle is persisted")

	got, err = c.Submit(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)

	got, err = c.Submit(ctx, "//aq")
	require.NoError(t, err)
	assert.True(t, got.Toggled)
	assert.True(t, got.Enabled)
}

func TestComposer_NotACommand(t *testing.T) {
	c, _ := newComposer(t, domain.DefaultSettings())

	got, err := c.Submit(context.Background(), "//aq please")
	require.NoError(t, err)
	assert.False(t, got.Toggled)
	assert.True(t, got.Send)
	assert.Equal(t, `"//aq please"`, got.Text)
}

func TestComposer_RejectsInput(t *testing.T) {
	metrics := host.NewMetrics()
	store := memory.NewStore()
	c := host.NewComposer(host.NewSettingsManager(store), host.WithMetrics(metrics))

	_, err := c.Submit(context.Background(), strings.Repeat("a", host.DefaultMaxInputSize+1))
	assert.ErrorIs(t, err, domain.ErrInputTooLarge)

	_, err = c.Submit(context.Background(), "\xff")
	assert.ErrorIs(t, err, domain.ErrInvalidUTF8)
}

func TestComposer_BadStoredColor(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Save(ctx, domain.ExtensionName, map[string]any{
		domain.KeyEnabled:             true,
		domain.KeyHighlightNamesColor: "red;",
	}))
	settings := host.NewSettingsManager(store)
	c := host.NewComposer(settings)

	got, err := c.Submit(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, host.Submission{Text: `"hello"`, Send: true, Enabled: true}, got)

	got, err = c.Submit(ctx, "//aq")
	require.NoError(t, err)
	assert.True(t, got.Toggled)
	assert.False(t, got.Enabled)

	blob, err := store.Load(ctx, domain.ExtensionName)
	require.NoError(t, err)
	assert.Equal(t, "#CFCFC5", blob[domain.KeyHighlightNamesColor], "the toggle saves the repaired color")
}
