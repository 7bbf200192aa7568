package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"pool-calc-backend/internal/config"
	"pool-calc-backend/internal/domain"
	"pool-calc-backend/internal/log"
)

const (
	jsonFormat = "json"
	yamlFormat = "yaml"
	textFormat = "text"
)

type GlobalOptions struct {
	CatalogFile string
	LogLevel    string
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		LogLevel: "warn",
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.CatalogFile, "catalog", "c", o.CatalogFile, "Path to a YAML option catalog (built-in catalog if empty)")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level (debug, info, warn, error)")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	zap.ReplaceGlobals(log.InitLog(log.ParseLevel(o.LogLevel)))
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	return nil
}

// Catalog — каталог из файла или встроенный
func (o *GlobalOptions) Catalog() (*domain.PoolCatalog, error) {
	c, err := config.LoadCatalogOrDefault(o.CatalogFile)
	if err != nil {
		return nil, err
	}
	zap.S().Named("cli").Debugw("catalog loaded", "file", o.CatalogFile, "groups", len(c.Groups))
	return c, nil
}
