package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dedene/postfmt-cli/internal/styletext"
)

func TestCountCmd_Basic(t *testing.T) {
	cmd := &CountCmd{Text: []string{"hello"}}

	var runErr error
	output := captureStdout(t, func() { runErr = cmd.Run(plainCtx(t, false)) })

	require.NoError(t, runErr)
	assert.Contains(t, output, "code points: 5")
	assert.Contains(t, output, "graphemes:   5")
	assert.Contains(t, output, "twitter")
	assert.Contains(t, output, "facebook")
}

func TestCountCmd_StyledTextCountsGlyphs(t *testing.T) {
	styled := styletext.Transcode("hello", styletext.Bold)
	cmd := &CountCmd{Text: []string{styled}}

	var runErr error
	output := captureStdout(t, func() { runErr = cmd.Run(plainCtx(t, false)) })

	require.NoError(t, runErr)
	assert.Contains(t, output, "code points: 5")
	assert.Contains(t, output, "formatted:   100%")
}

func TestCountCmd_StruckTextReportsPlainLength(t *testing.T) {
	struck := styletext.Decorate("abc", styletext.StrikeMark)
	cmd := &CountCmd{Text: []string{struck}}

	var runErr error
	output := captureStdout(t, func() { runErr = cmd.Run(plainCtx(t, false)) })

	require.NoError(t, runErr)
	assert.Contains(t, output, "code points: 6")
	assert.Contains(t, output, "graphemes:   3")
	assert.Contains(t, output, "plain:       3")
}

func TestCountCmd_SinglePlatform(t *testing.T) {
	cmd := &CountCmd{Text: []string{"hi"}, Platform: "twitter"}

	var runErr error
	output := captureStdout(t, func() { runErr = cmd.Run(plainCtx(t, false)) })

	require.NoError(t, runErr)
	assert.Contains(t, output, "twitter")
	assert.NotContains(t, output, "facebook")
}

func TestCountCmd_UnknownPlatform(t *testing.T) {
	cmd := &CountCmd{Text: []string{"hi"}, Platform: "myspace"}
	err := cmd.Run(plainCtx(t, false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "myspace")
}

func TestCountCmd_OverLimit(t *testing.T) {
	cmd := &CountCmd{Text: []string{strings.Repeat("x", 300)}, Platform: "twitter"}

	var runErr error
	output := captureStdout(t, func() { runErr = cmd.Run(plainCtx(t, false)) })

	require.NoError(t, runErr)
	assert.Contains(t, output, "over")
	assert.Contains(t, output, "-20")
}

func TestCountCmd_JSON(t *testing.T) {
	cmd := &CountCmd{Text: []string{"hello"}}

	var runErr error
	output := captureStdout(t, func() { runErr = cmd.Run(plainCtx(t, true)) })

	require.NoError(t, runErr)

	var parsed struct {
		CodePoints      int           `json:"code_points"`
		Graphemes       int           `json:"graphemes"`
		FormattedRatio  float64       `json:"formatted_ratio"`
		PlainCodePoints int           `json:"plain_code_points"`
		Platforms       []platformFit `json:"platforms"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &parsed))
	assert.Equal(t, 5, parsed.CodePoints)
	assert.Equal(t, 5, parsed.Graphemes)
	assert.Equal(t, 0.0, parsed.FormattedRatio)
	assert.Len(t, parsed.Platforms, len(platformLimits))

	for _, f := range parsed.Platforms {
		assert.True(t, f.Fits)
		assert.Equal(t, f.Limit-5, f.Remaining)
	}
}

func TestPlatformNames_Sorted(t *testing.T) {
	assert.Equal(t, []string{
		"facebook", "instagram", "linkedin", "mastodon", "threads", "twitter",
	}, platformNames())
}
