package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_ExitCodes(t *testing.T) {
	t.Run("help", func(t *testing.T) {
		assert.Equal(t, 0, run([]string{"--help"}))
	})
	t.Run("unknown flag", func(t *testing.T) {
		assert.Equal(t, 2, run([]string{"--bogus"}))
	})
	t.Run("invalid configuration", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv(envDockerNetwork, "")
		assert.Equal(t, 1, run([]string{"--once"}))
	})
	t.Run("dry run still needs an addressing mode", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv(envDockerNetwork, "")
		t.Setenv(envRedisURL, "")
		assert.Equal(t, 1, run([]string{"--once", "--dry-run"}))
	})
}
