package common

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{
			name: "user error wins",
			err:  NewUserError("직접 지정한 메시지", ErrGeneration),
			want: "직접 지정한 메시지",
		},
		{
			name: "wrapped no products",
			err:  fmt.Errorf("resolve: %w", ErrNoProductsFound),
			want: MsgNoProductsFound,
		},
		{
			name: "image synthesis",
			err:  ErrImageSynthesis,
			want: MsgImageSynthesis,
		},
		{
			name: "unknown falls back to generic",
			err:  errors.New("boom"),
			want: MsgGenerationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestUserErrorUnwrap(t *testing.T) {
	err := NewUserError(MsgImageSynthesis, ErrImageSynthesis)

	assert.True(t, errors.Is(err, ErrImageSynthesis))
	assert.Contains(t, err.Error(), MsgImageSynthesis)
	assert.Equal(t, "plain", (&UserError{UserMessage: "plain"}).Error())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	_, err = ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, setupLogger(&buf, slog.LevelInfo, "json"))
	slog.Info("hello", "stage", "planning")
	assert.Contains(t, buf.String(), `"stage":"planning"`)

	assert.ErrorIs(t, setupLogger(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}
