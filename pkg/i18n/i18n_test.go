package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateWithTemplateData(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	msg := tr.T(context.Background(), "login.success.description", map[string]interface{}{"Name": "Jane"})
	assert.Equal(t, "Welcome back, Jane", msg)
}

func TestTranslateUsesContextLocale(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	ctx := WithLocale(context.Background(), "fil")
	assert.Equal(t, "Nabigo ang Pag-login", tr.T(ctx, "login.failed.title"))
}

func TestUnknownLocaleFallsBackToDefault(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	ctx := WithLocale(context.Background(), "de-DE")
	assert.Equal(t, "Login Failed", tr.T(ctx, "login.failed.title"))
}

func TestUnknownMessageReturnsID(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)
	assert.Equal(t, "missing.key", tr.T(context.Background(), "missing.key"))
}

func TestNotifyOmitsMissingDescription(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	n := tr.Notify(context.Background(), LevelSuccess, "logout", nil)
	assert.Equal(t, "Logged Out", n.Title)
	assert.Empty(t, n.Description)

	n = tr.Notify(context.Background(), LevelInfo, "wfh.pending", nil)
	assert.Equal(t, "Approval Request Sent", n.Title)
	assert.Equal(t, "Waiting for HR Division Records approval...", n.Description)
}
