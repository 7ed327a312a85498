package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jhoicas/validador-cpe/internal/application/validation"
	"github.com/jhoicas/validador-cpe/internal/domain/entity"
	infrasunat "github.com/jhoicas/validador-cpe/internal/infrastructure/sunat"
	httpRouter "github.com/jhoicas/validador-cpe/internal/interfaces/http"
	pkgsunat "github.com/jhoicas/validador-cpe/pkg/sunat"
)

type serveOptions struct {
	Port int
}

func (o *serveOptions) Bind(fs *pflag.FlagSet) {
	fs.IntVarP(&o.Port, "port", "p", 0, "puerto HTTP (HTTP_PORT)")
}

func NewCmdServe(global *GlobalOptions) *cobra.Command {
	o := &serveOptions{}
	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Expone la validación de comprobantes sueltos por HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.Load()
			if err != nil {
				return err
			}
			if o.Port > 0 {
				cfg.HTTP.Port = o.Port
			}
			log := newLogger(cfg)
			log.Info().Str("env", cfg.App.Env).Str("app", cfg.App.Name).Msg("iniciando aplicación")

			tokens := infrasunat.NewCachedTokenProvider(
				infrasunat.NewTokenClient(cfg.SUNAT.TokenBaseURL, cfg.SUNAT.Scope, cfg.SUNAT.Timeout),
			)
			verifier := infrasunat.NewVerifierClient(cfg.SUNAT.APIBaseURL, pkgsunat.DefaultCatalogues(), cfg.SUNAT.Timeout, log)
			validateUC, err := validation.NewSingleUseCase(entity.Credential{
				RUC:          cfg.SUNAT.RUC,
				ClientID:     cfg.SUNAT.ClientID,
				ClientSecret: cfg.SUNAT.ClientSecret,
			}, tokens, verifier, log)
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				log.Warn().Msg("JWT_SECRET vacío: la API no exige autenticación")
			}

			app := fiber.New(fiber.Config{
				AppName:      cfg.App.Name,
				ReadTimeout:  time.Second * 10,
				WriteTimeout: cfg.SUNAT.Timeout + 10*time.Second,
				IdleTimeout:  time.Second * 60,
			})
			app.Use(recover.New())

			httpRouter.Router(app, httpRouter.RouterDeps{
				AppName:    cfg.App.Name,
				ValidateUC: validateUC,
				JWTSecret:  cfg.JWT.Secret,
			})

			go func() {
				if err := app.Listen(cfg.HTTP.Addr()); err != nil {
					log.Error().Err(err).Msg("servidor HTTP finalizado")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			log.Info().Msg("señal de apagado recibida, cerrando servidor...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("apagado del servidor")
			}
			log.Info().Msg("aplicación detenida")
			return nil
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}
