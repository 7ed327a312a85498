package opener_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/validador-cpe/internal/infrastructure/opener"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"windows", "cmd", []string{"/c", "start", "", `C:\consulta.xlsx`}},
		{"darwin", "open", []string{`C:\consulta.xlsx`}},
		{"linux", "xdg-open", []string{`C:\consulta.xlsx`}},
		{"freebsd", "xdg-open", []string{`C:\consulta.xlsx`}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := opener.Command(tt.goos, `C:\consulta.xlsx`)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
