package cli

import (
	"github.com/spf13/pflag"

	"github.com/jhoicas/validador-cpe/pkg/config"
	"github.com/jhoicas/validador-cpe/pkg/logger"
)

// GlobalOptions flags comunes a todos los subcomandos. Tienen prioridad sobre
// el entorno y los archivos .env.
type GlobalOptions struct {
	LogLevel string
	Env      string
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.LogLevel, "log-level", "", "nivel de log (trace, debug, info, warn, error)")
	fs.StringVar(&o.Env, "env", "", "entorno (development = consola legible, production = JSON)")
}

// Load carga la configuración y aplica los flags globales.
func (o *GlobalOptions) Load() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.LogLevel != "" {
		cfg.App.LogLevel = o.LogLevel
	}
	if o.Env != "" {
		cfg.App.Env = o.Env
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
}
