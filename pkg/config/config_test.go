package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/validador-cpe/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "Consulta", cfg.Excel.Sheet)
	assert.Equal(t, 15*time.Second, cfg.Retry.Delay)
	assert.Zero(t, cfg.Retry.MaxPasses)
	assert.Equal(t, 30*time.Second, cfg.SUNAT.Timeout)
	assert.Equal(t, "https://api-seguridad.sunat.gob.pe", cfg.SUNAT.TokenBaseURL)
	assert.Equal(t, "https://api.sunat.gob.pe", cfg.SUNAT.APIBaseURL)
	assert.True(t, cfg.Report.OpenOnFinish)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("EXCEL_PATH", "/datos/consulta.xlsx")
	t.Setenv("RETRY_DELAY_SECONDS", "2")
	t.Setenv("RETRY_MAX_PASSES", "5")
	t.Setenv("SUNAT_CLIENT_ID", "  abc  ")
	t.Setenv("OPEN_ON_FINISH", "false")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/datos/consulta.xlsx", cfg.Excel.Path)
	assert.Equal(t, 2*time.Second, cfg.Retry.Delay)
	assert.Equal(t, 5, cfg.Retry.MaxPasses)
	assert.Equal(t, "abc", cfg.SUNAT.ClientID)
	assert.False(t, cfg.Report.OpenOnFinish)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_PasadasNegativas(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RETRY_MAX_PASSES", "-1")

	_, err := config.Load()
	assert.Error(t, err)
}
