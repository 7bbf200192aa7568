package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"

	"pool-calc-backend/internal/config"
)

var legalCatalogOutputs = []string{yamlFormat, jsonFormat}

type CatalogOptions struct {
	GlobalOptions

	Output string
}

func DefaultCatalogOptions() *CatalogOptions {
	return &CatalogOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        yamlFormat,
	}
}

func NewCmdCatalog() *cobra.Command {
	o := DefaultCatalogOptions()
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the option catalog (a starting point for --catalog files).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *CatalogOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalCatalogOutputs, ", ")))
}

func (o *CatalogOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if !funk.ContainsString(legalCatalogOutputs, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalCatalogOutputs, ", "))
	}
	return nil
}

func (o *CatalogOptions) Run(ctx context.Context, out io.Writer) error {
	c, err := o.Catalog()
	if err != nil {
		return err
	}

	if o.Output == jsonFormat {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}

	data, err := config.MarshalCatalog(c)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
