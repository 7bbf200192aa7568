package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"pool-calc-backend/internal/domain"
	"pool-calc-backend/internal/report"
)

// backCommand — ввод, возвращающий мастер на шаг назад
const backCommand = "<"

var errBack = errors.New("back")

type WizardOptions struct {
	GlobalOptions

	PDFFile string
}

func DefaultWizardOptions() *WizardOptions {
	return &WizardOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdWizard() *cobra.Command {
	o := DefaultWizardOptions()
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Walk through the pool estimate wizard step by step.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *WizardOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.PDFFile, "pdf", o.PDFFile, "Also write the final estimate to this PDF file")
}

func (o *WizardOptions) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	c, err := o.Catalog()
	if err != nil {
		return err
	}

	p := &prompter{in: bufio.NewScanner(in), out: out}
	fmt.Fprintf(out, "Pool estimate wizard. Enter %q to go back a step.\n", backCommand)

	s := c.Start()
	for !s.State.Finished() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		step := s.State.CurrentStep
		fmt.Fprintf(out, "\nStep %d of %d: %s\n", step, s.State.TotalSteps, c.StepName(step))

		s, err = o.askStep(c, p, s)
		if errors.Is(err, errBack) {
			s = c.Previous(s)
			continue
		}
		if err != nil {
			return err
		}

		next, err := c.Next(s)
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(out, verr.Error())
			continue
		}
		s = next
	}

	est := report.NewEstimate(c, s.Selections)
	zap.S().Named("cli").Debugw("estimate finalized", "reference", est.Reference, "total", est.Result.Breakdown.Total)
	if err := printEstimate(out, est); err != nil {
		return err
	}

	if o.PDFFile != "" {
		if err := writePDF(o.PDFFile, est); err != nil {
			return err
		}
		fmt.Fprintf(out, "PDF written to %s\n", o.PDFFile)
	}
	return nil
}

// askStep спрашивает все группы шага и применяет ответы к сессии
func (o *WizardOptions) askStep(c *domain.PoolCatalog, p *prompter, s domain.Session) (domain.Session, error) {
	for _, g := range c.GroupsForStep(s.State.CurrentStep) {
		chosen, err := p.askGroup(g, s.Selections[g.ID])
		if err != nil {
			return s, err
		}

		if g.Kind == domain.GroupKindSingle {
			for _, id := range chosen {
				s = c.Select(s, g.ID, id, true)
			}
			continue
		}

		want := make(map[string]bool, len(chosen))
		for _, id := range chosen {
			want[id] = true
		}
		for _, opt := range g.Options {
			s = c.Select(s, g.ID, opt.ID, want[opt.ID])
		}
	}
	return s, nil
}

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// askGroup показывает опции группы и возвращает выбранные ID.
// Пустой ввод оставляет текущий выбор.
func (p *prompter) askGroup(g domain.OptionGroup, current []string) ([]string, error) {
	fmt.Fprintf(p.out, "%s:\n", g.Label)
	for i, opt := range g.Options {
		mark := " "
		for _, id := range current {
			if id == opt.ID {
				mark = "*"
			}
		}
		fmt.Fprintf(p.out, "  %s %d) %s (%s)\n", mark, i+1, opt.Label, optionPrice(g, opt))
	}

	for {
		if g.Kind == domain.GroupKindSingle {
			fmt.Fprintf(p.out, "Choose one [1-%d]: ", len(g.Options))
		} else {
			fmt.Fprintf(p.out, "Choose any, comma-separated [1-%d], \"-\" for none: ", len(g.Options))
		}

		line, err := p.readLine()
		if err != nil {
			return nil, err
		}
		switch line {
		case backCommand:
			return nil, errBack
		case "":
			return current, nil
		case "-":
			if g.Kind != domain.GroupKindSingle {
				return nil, nil
			}
		}

		ids, err := parseChoice(g, line)
		if err != nil {
			fmt.Fprintln(p.out, err.Error())
			continue
		}
		return ids, nil
	}
}

// parseChoice разбирает номера опций ("1", "2, 4")
func parseChoice(g domain.OptionGroup, line string) ([]string, error) {
	var ids []string
	for _, part := range strings.Split(line, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > len(g.Options) {
			return nil, fmt.Errorf("enter a number between 1 and %d", len(g.Options))
		}
		ids = append(ids, g.Options[n-1].ID)
	}
	if g.Kind == domain.GroupKindSingle && len(ids) != 1 {
		return nil, fmt.Errorf("choose exactly one option")
	}
	return ids, nil
}
