package diagnose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchforge/launchkit"
	"github.com/launchforge/launchkit/diagnose"
)

func stderrRec(text string) launchkit.OutputRecord {
	return launchkit.OutputRecord{Channel: launchkit.ChannelStderr, Text: text}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want diagnose.Cause
		ok   bool
	}{
		{
			name: "out of memory",
			text: "Exception in thread \"main\" java.lang.OutOfMemoryError: Java heap space",
			want: diagnose.CauseMemory,
			ok:   true,
		},
		{
			name: "gc overhead",
			text: "java.lang.OutOfMemoryError: GC overhead limit exceeded",
			want: diagnose.CauseMemory,
			ok:   true,
		},
		{
			name: "missing main class",
			text: "Error: Could not find or load main class net.minecraft.client.main.Main",
			want: diagnose.CauseMainClass,
			ok:   true,
		},
		{
			name: "main class init",
			text: "Error: Unable to initialize main class net.minecraft.client.main.Main",
			want: diagnose.CauseMainClass,
			ok:   true,
		},
		{
			name: "auth failure",
			text: "[Client thread/ERROR]: Failed to authenticate with session server",
			want: diagnose.CauseAuth,
			ok:   true,
		},
		{
			name: "download failure",
			text: "[Downloader/WARN]: Failed to download assets index",
			want: diagnose.CauseDownload,
			ok:   true,
		},
		{
			name: "bad token",
			text: "com.mojang.authlib.exceptions.AuthenticationException: Invalid token",
			want: diagnose.CauseToken,
			ok:   true,
		},
		{
			name: "no match",
			text: "[Client thread/INFO]: LWJGL Version: 3.3.2",
			ok:   false,
		},
		{
			name: "empty line",
			text: "",
			ok:   false,
		},
	}

	c := diagnose.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Classify(stderrRec(tt.text))
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestClassify_StdoutIgnored(t *testing.T) {
	c := diagnose.New()
	_, ok := c.Classify(launchkit.OutputRecord{
		Channel: launchkit.ChannelStdout,
		Text:    "java.lang.OutOfMemoryError: Java heap space",
	})
	assert.False(t, ok)
}

func TestClassify_PriorityOrder(t *testing.T) {
	// A line matching both memory and token signatures classifies as
	// memory, the earlier rule.
	c := diagnose.New()
	cause, ok := c.Classify(stderrRec("out of memory while refreshing invalid token"))
	require.True(t, ok)
	assert.Equal(t, diagnose.CauseMemory, cause)
}

func TestClassify_CaseInsensitive(t *testing.T) {
	c := diagnose.New()
	cause, ok := c.Classify(stderrRec("ERROR: FAILED TO AUTHENTICATE"))
	require.True(t, ok)
	assert.Equal(t, diagnose.CauseAuth, cause)
}

func TestWatch(t *testing.T) {
	c := diagnose.New()
	feed := make(chan launchkit.OutputRecord, 8)
	feed <- stderrRec("java.lang.OutOfMemoryError: Java heap space")
	feed <- stderrRec("plain log line")
	feed <- launchkit.OutputRecord{Channel: launchkit.ChannelStdout, Text: "out of memory"}
	feed <- stderrRec("Invalid token")
	close(feed)

	var got []launchkit.Diagnostic
	c.Watch(feed, func(d launchkit.Diagnostic) { got = append(got, d) })

	require.Len(t, got, 2)
	assert.Equal(t, string(diagnose.CauseMemory), got[0].Cause)
	assert.Equal(t, string(diagnose.CauseToken), got[1].Cause)
	assert.Equal(t, "Invalid token", got[1].Record.Text)
}

func TestWatch_NilEmit(t *testing.T) {
	c := diagnose.New()
	feed := make(chan launchkit.OutputRecord, 1)
	feed <- stderrRec("out of memory")
	close(feed)

	assert.NotPanics(t, func() { c.Watch(feed, nil) })
}
