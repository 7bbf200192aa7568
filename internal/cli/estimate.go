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

	"pool-calc-backend/internal/domain"
	"pool-calc-backend/internal/report"
)

var legalEstimateOutputs = []string{textFormat, jsonFormat}

type EstimateOptions struct {
	GlobalOptions

	Selections []string
	PDFFile    string
	Output     string
}

func DefaultEstimateOptions() *EstimateOptions {
	return &EstimateOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        textFormat,
	}
}

func NewCmdEstimate() *cobra.Command {
	o := DefaultEstimateOptions()
	cmd := &cobra.Command{
		Use:   "estimate --select GROUP=OPTION ...",
		Short: "Price a complete set of selections without the step-by-step wizard.",
		Example: "  poolcalc estimate -s poolModel=classic -s poolSize=medium -s access=easy -s soil=normal -s slope=flat\n" +
			"  poolcalc estimate -s poolModel=lap -s poolSize=large -s features=heater,spa -s access=easy -s soil=clay -s slope=flat -o json",
		Args: cobra.NoArgs,
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

func (o *EstimateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringArrayVarP(&o.Selections, "select", "s", o.Selections, "Selection as GROUP=OPTION[,OPTION...]; repeat for each group")
	fs.StringVar(&o.PDFFile, "pdf", o.PDFFile, "Also write the estimate to this PDF file")
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalEstimateOutputs, ", ")))
}

func (o *EstimateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if !funk.ContainsString(legalEstimateOutputs, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalEstimateOutputs, ", "))
	}
	_, err := parseSelections(o.Selections)
	return err
}

func (o *EstimateOptions) Run(ctx context.Context, out io.Writer) error {
	c, err := o.Catalog()
	if err != nil {
		return err
	}
	sel, err := parseSelections(o.Selections)
	if err != nil {
		return err
	}

	// тот же путь, что и в мастере: выбор через Select, проверка каждого шага
	s := c.Start()
	for group, ids := range sel {
		g := c.Group(group)
		if g == nil {
			return fmt.Errorf("unknown group %q", group)
		}
		for _, id := range ids {
			if g.Option(id) == nil {
				return fmt.Errorf("unknown option %q in group %q", id, group)
			}
			s = c.Select(s, group, id, true)
		}
	}
	for s.State.CurrentStep <= domain.TotalSteps {
		if s, err = c.Next(s); err != nil {
			return err
		}
	}

	est := report.NewEstimate(c, s.Selections)
	if o.PDFFile != "" {
		if err := writePDF(o.PDFFile, est); err != nil {
			return err
		}
	}

	if o.Output == jsonFormat {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(estimateJSON{
			Reference:  est.Reference,
			Selections: est.Selections,
			Result:     est.Result,
			Items:      est.Result.Items(),
		})
	}
	return printEstimate(out, est)
}

type estimateJSON struct {
	Reference  string                 `json:"reference"`
	Selections domain.Selections      `json:"selections"`
	Result     domain.EstimateResult  `json:"result"`
	Items      []domain.BreakdownItem `json:"items"`
}

// parseSelections разбирает "group=opt1,opt2"; повтор группы дописывает опции
func parseSelections(raw []string) (domain.Selections, error) {
	sel := domain.Selections{}
	for _, item := range raw {
		group, opts, ok := strings.Cut(item, "=")
		group = strings.TrimSpace(group)
		if !ok || group == "" || strings.TrimSpace(opts) == "" {
			return nil, fmt.Errorf("invalid selection %q, expected GROUP=OPTION", item)
		}
		for _, id := range strings.Split(opts, ",") {
			if id = strings.TrimSpace(id); id != "" {
				sel[group] = append(sel[group], id)
			}
		}
	}
	return sel, nil
}
