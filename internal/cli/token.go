package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jhoicas/validador-cpe/internal/application/dto"
	"github.com/jhoicas/validador-cpe/pkg/jwt"
)

type tokenOptions struct {
	Subject    string
	ExpMinutes int
}

func (o *tokenOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.Subject, "subject", "", "identificador del cliente de la API")
	fs.IntVar(&o.ExpMinutes, "exp", 0, "vigencia en minutos (JWT_EXPIRATION_MINUTES)")
}

func NewCmdToken(global *GlobalOptions) *cobra.Command {
	o := &tokenOptions{}
	cmd := &cobra.Command{
		Use:          "token",
		Short:        "Genera un JWT para la API local (modo serve)",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.Subject == "" {
				return fmt.Errorf("--subject es obligatorio")
			}
			cfg, err := global.Load()
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return fmt.Errorf("JWT_SECRET no configurado")
			}
			exp := cfg.JWT.Expiration
			if o.ExpMinutes > 0 {
				exp = o.ExpMinutes
			}

			token, err := jwt.Generate(cfg.JWT.Secret, o.Subject, cfg.JWT.Issuer, exp)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dto.IssueTokenResponse{Token: token, ExpiresIn: exp * 60})
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}
