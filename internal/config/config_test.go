package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLogPath = "/tmp/rescuebot.csv"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.ScenariosFile)
	assert.Equal(t, "userRescueBot.csv", cfg.UserLogPath)
	assert.Equal(t, "simulationRescueBot.csv", cfg.SimulationLogPath)
	assert.Equal(t, 3, cfg.ReportEvery)
	assert.Zero(t, cfg.Seed)
	assert.Empty(t, cfg.MetricsFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("RESCUEBOT_SCENARIOS_FILE", "scenarios.csv")
	t.Setenv("RESCUEBOT_USER_LOG", "user.csv")
	t.Setenv("RESCUEBOT_SIMULATION_LOG", "sim.csv")
	t.Setenv("RESCUEBOT_REPORT_EVERY", "5")
	t.Setenv("RESCUEBOT_SEED", "42")
	t.Setenv("RESCUEBOT_METRICS_FILE", "rescuebot.prom")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "scenarios.csv", cfg.ScenariosFile)
	assert.Equal(t, "user.csv", cfg.UserLogPath)
	assert.Equal(t, "sim.csv", cfg.SimulationLogPath)
	assert.Equal(t, 5, cfg.ReportEvery)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "rescuebot.prom", cfg.MetricsFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_InvalidReportEvery(t *testing.T) {
	t.Setenv("RESCUEBOT_REPORT_EVERY", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESCUEBOT_REPORT_EVERY")
}

func TestLoad_UnparsableReportEvery(t *testing.T) {
	t.Setenv("RESCUEBOT_REPORT_EVERY", "three")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestLoad_InvalidSeed(t *testing.T) {
	t.Setenv("RESCUEBOT_SEED", "-1")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestSetLogPath(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.SetLogPath("")
	assert.Equal(t, "userRescueBot.csv", cfg.UserLogPath)

	cfg.SetLogPath(testLogPath)
	assert.Equal(t, testLogPath, cfg.UserLogPath)
	assert.Equal(t, testLogPath, cfg.SimulationLogPath)
}
