package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConfigSetAndGetRoundTrip(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfgPath := filepath.Join(t.TempDir(), "nextplace.yaml")
	viper.SetConfigFile(cfgPath)

	require.NoError(t, runConfigSet("scoring.gapOpen", "-8"))

	_, err := os.Stat(cfgPath)
	require.NoError(t, err, "config file should have been written")

	require.NoError(t, runConfigGet("scoring.gapOpen"))
	assert.Equal(t, "-8", viper.GetString("scoring.gapOpen"))
}

func TestRunConfigSetCoercesBooleanWords(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfgPath := filepath.Join(t.TempDir(), "nextplace.yaml")
	viper.SetConfigFile(cfgPath)

	require.NoError(t, runConfigSet("translatePastStop", "true"))
	assert.True(t, viper.GetBool("translatePastStop"))
}

func TestRunConfigGetReturnsErrorForUnsetKey(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	err := runConfigGet("does.not.exist")
	assert.Error(t, err)
}

func TestRunConfigSetRejectsUnknownKey(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfgPath := filepath.Join(t.TempDir(), "nextplace.yaml")
	viper.SetConfigFile(cfgPath)

	err := runConfigSet("scoring.typoed", "1")
	assert.Error(t, err)
	_, statErr := os.Stat(cfgPath)
	assert.Error(t, statErr, "a rejected key should never reach viper.WriteConfigAs")
}

func TestRunConfigSetRejectsNonIntegerScoringValue(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfgPath := filepath.Join(t.TempDir(), "nextplace.yaml")
	viper.SetConfigFile(cfgPath)

	assert.Error(t, runConfigSet("scoring.match", "not-a-number"))
}

func TestRunConfigSetRejectsPositiveGapPenalty(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfgPath := filepath.Join(t.TempDir(), "nextplace.yaml")
	viper.SetConfigFile(cfgPath)

	err := runConfigSet("scoring.gapExtend", "2")
	assert.Error(t, err, "gap penalties must be <= 0")
}

func TestRunConfigSetRejectsUnrecognizedBooleanWord(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfgPath := filepath.Join(t.TempDir(), "nextplace.yaml")
	viper.SetConfigFile(cfgPath)

	assert.Error(t, runConfigSet("translatePastStop", "sure"))
}

func TestRunConfigSetAcceptsPathKey(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfgPath := filepath.Join(t.TempDir(), "nextplace.yaml")
	viper.SetConfigFile(cfgPath)

	require.NoError(t, runConfigSet("reference.path", "/data/ref.fasta"))
	assert.Equal(t, "/data/ref.fasta", viper.GetString("reference.path"))
}
