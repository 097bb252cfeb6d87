package provider

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSayUnavailableWithoutBinary(t *testing.T) {
	orig := sayLookPath
	t.Cleanup(func() { sayLookPath = orig })
	sayLookPath = func(string) (string, error) {
		return "", exec.ErrNotFound
	}

	s := NewSay(testLogger())
	assert.False(t, s.Available())
	assert.Error(t, s.SynthesizeAndPlay(context.Background(), "hello"))
}

func TestSayRunsFirstCandidate(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("linux candidate list")
	}

	origLook, origRun := sayLookPath, sayRun
	t.Cleanup(func() { sayLookPath, sayRun = origLook, origRun })

	sayLookPath = func(bin string) (string, error) {
		if bin == "espeak" {
			return "/usr/bin/espeak", nil
		}
		return "", exec.ErrNotFound
	}

	var ranBin string
	var ranArgs []string
	sayRun = func(_ context.Context, name string, args ...string) error {
		ranBin, ranArgs = name, args
		return nil
	}

	s := NewSay(testLogger())
	require.True(t, s.Available())
	require.NoError(t, s.SynthesizeAndPlay(context.Background(), "hello"))
	assert.Equal(t, "/usr/bin/espeak", ranBin)
	assert.Equal(t, []string{"hello"}, ranArgs)
}

func TestSayWrapsCommandFailure(t *testing.T) {
	origLook, origRun := sayLookPath, sayRun
	t.Cleanup(func() { sayLookPath, sayRun = origLook, origRun })

	sayLookPath = func(bin string) (string, error) { return "/usr/bin/" + bin, nil }
	sayRun = func(context.Context, string, ...string) error {
		return errors.New("exit status 1")
	}

	s := NewSay(testLogger())
	err := s.SynthesizeAndPlay(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 1")
}
