package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/scoring"
)

func TestWordSource(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "embedded:words.txt", wordSource(cfg).Name())

	cfg.WordsFile = "./words.txt"
	assert.Equal(t, "./words.txt", wordSource(cfg).Name())
}

func TestNewScorer(t *testing.T) {
	cfg := config.Default()
	src := wordSource(cfg)

	sc, err := newScorer(cfg, src)
	require.NoError(t, err)
	assert.IsType(t, &scoring.HTTPClient{}, sc)

	cfg.ScoringMode = config.ModeLocal
	sc, err = newScorer(cfg, src)
	require.NoError(t, err)
	assert.IsType(t, &scoring.LocalClient{}, sc)

	cfg.ScoringMode = config.ModeRemote
	cfg.ScoringBaseURL = "::bad"
	_, err = newScorer(cfg, src)
	assert.Error(t, err)
}

func TestOpenHistory(t *testing.T) {
	cfg := config.Default()
	st, err := openHistory(cfg)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	cfg.DBPath = filepath.Join(t.TempDir(), "solves.db")
	st, err = openHistory(cfg)
	require.NoError(t, err)
	require.NoError(t, st.Close())
}
