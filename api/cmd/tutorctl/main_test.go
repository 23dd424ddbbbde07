package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCalc(t *testing.T) {
	assert.Equal(t, "The result is 17\n", run(t, "calc", "2", "+", "5*3"))
	assert.Equal(t, "The result is 3.5\n", run(t, "calc", "7/2"))
	assert.Contains(t, run(t, "calc", "__import__('os')"), "couldn't calculate")
}

func TestSolve(t *testing.T) {
	assert.Equal(t, "Force = 10.0 N (using F = ma)\n", run(t, "solve", "mass of 5 kg and acceleration of 2 m/s²"))
	assert.Contains(t, run(t, "solve", "what is inertia?"), "couldn't automatically solve")
}

func TestAsk_RequiresConfig(t *testing.T) {
	t.Setenv("TUTOR_CONFIG", "")
	t.Setenv("DEFAULT_LLM", "gemini")
	t.Setenv("GEMINI_API_KEY", "")

	rootCmd.SetArgs([]string{"ask", "hi"})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	assert.Error(t, rootCmd.Execute())
}
