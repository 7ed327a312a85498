package cli_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/validador-cpe/internal/application/dto"
	"github.com/jhoicas/validador-cpe/internal/cli"
	"github.com/jhoicas/validador-cpe/internal/domain"
	pkgjwt "github.com/jhoicas/validador-cpe/pkg/jwt"
)

func TestRoot_Subcomandos(t *testing.T) {
	cmd := cli.NewValidadorCommand()

	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"validar", "serve", "token"})
	assert.NotNil(t, cmd.Flags().Lookup("excel"), "la raíz acepta los flags de validar")
}

func TestToken_GeneraJWTValido(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "secreto-cli")

	var out bytes.Buffer
	cmd := cli.NewValidadorCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"token", "--subject", "erp", "--exp", "5"})
	require.NoError(t, cmd.Execute())

	var resp dto.IssueTokenResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, 300, resp.ExpiresIn)

	subject, scope, err := pkgjwt.Parse("secreto-cli", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "erp", subject)
	assert.Equal(t, pkgjwt.ScopeValidate, scope)
}

func TestToken_SinSecret(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "")

	cmd := cli.NewValidadorCommand()
	cmd.SetArgs([]string{"token", "--subject", "erp"})
	assert.Error(t, cmd.Execute())
}

func TestValidar_CredencialFaltanteNoUsaRed(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Consulta"))
	require.NoError(t, f.SetCellValue("Consulta", "C3", "20100066603"))
	path := filepath.Join(dir, "consulta.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	// un endpoint inalcanzable: si se llamara, el error sería de autenticación
	t.Setenv("SUNAT_TOKEN_BASE_URL", "http://127.0.0.1:1")

	cmd := cli.NewValidadorCommand()
	cmd.SetArgs([]string{"validar", "--excel", path, "--sin-abrir", "--log-level", "error"})
	err := cmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
	assert.Contains(t, err.Error(), "Client ID")
}

func TestValidar_ArchivoInexistente(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cmd := cli.NewValidadorCommand()
	cmd.SetArgs([]string{"--excel", filepath.Join(dir, "no.xlsx"), "--sin-abrir", "--log-level", "error"})
	assert.Error(t, cmd.Execute())
}
