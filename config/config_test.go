package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contentscore/validator/config"
	"github.com/contentscore/validator/ids"
)

func validConfig() config.Config {
	c := config.Defaults()
	c.Netuid = 7
	c.StoreURI = "mem://"
	c.ServicePlatformTrackerURL = "http://tracker.local"
	c.ServiceAIDetectorURL = "http://detector.local"
	return c
}

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, validConfig().Verify())
}

func TestVerifyCatchesMissingNetuid(t *testing.T) {
	c := validConfig()
	c.Netuid = 0
	require.ErrorIs(t, c.Verify(), config.ErrNetuidRequired)
}

func TestVerifyCatchesBadAIThreshold(t *testing.T) {
	c := validConfig()
	c.AIGeneratedScoreThreshold = 1.5
	require.ErrorIs(t, c.Verify(), config.ErrInvalidAIThreshold)
}

func TestVerifyCatchesBadEMAAlpha(t *testing.T) {
	c := validConfig()
	c.EMAAlpha = 0
	require.ErrorIs(t, c.Verify(), config.ErrInvalidEMAAlpha)
}

func TestAllowsPlatform(t *testing.T) {
	c := validConfig()
	require.True(t, c.AllowsPlatform("yt/video"))
	require.False(t, c.AllowsPlatform("tiktok/clip"))
}

func TestSignatureTemplateAndCheck(t *testing.T) {
	c := validConfig()
	c.SignatureProjectTag = "acme"
	hotkey := ids.Hotkey("5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty")
	tmpl := c.SignatureTemplate(hotkey)
	require.Contains(t, tmpl, "94ty")

	caption := "check out my post! " + tmpl + " #content"
	require.True(t, c.CheckSignature(hotkey, caption))
	require.False(t, c.CheckSignature(hotkey, "no token here"))
}
