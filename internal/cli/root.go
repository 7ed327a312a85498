package cli

import (
	"github.com/spf13/cobra"
)

// NewValidadorCommand comando raíz. Sin subcomando ejecuta "validar", igual que
// al hacer doble clic en el ejecutable junto a la plantilla.
func NewValidadorCommand() *cobra.Command {
	global := &GlobalOptions{}
	validar := NewCmdValidar(global)

	cmd := &cobra.Command{
		Use:           "validador [flags] [comando]",
		Short:         "Validador masivo de comprobantes electrónicos (CPE) contra SUNAT",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          validar.RunE,
	}
	global.Bind(cmd.PersistentFlags())
	cmd.Flags().AddFlagSet(validar.Flags())

	cmd.AddCommand(validar)
	cmd.AddCommand(NewCmdServe(global))
	cmd.AddCommand(NewCmdToken(global))
	return cmd
}
