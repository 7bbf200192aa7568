package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"pool-calc-backend/internal/domain"
	"pool-calc-backend/internal/report"
)

func printEstimate(out io.Writer, est report.Estimate) error {
	res := est.Result

	fmt.Fprintf(out, "\nPool Construction Estimate #%s\n\n", est.ShortReference())

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	for _, l := range est.SelectionLines() {
		fmt.Fprintf(w, "%s:\t%s\n", l.Group, strings.Join(l.Options, ", "))
	}
	fmt.Fprintln(w, "\t")
	for _, it := range res.Items() {
		fmt.Fprintf(w, "%s\t%s\n", it.Label, domain.FormatMoney(it.Amount))
	}
	fmt.Fprintf(w, "Total\t%s\n", domain.FormatMoney(res.Breakdown.Total))
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\nEstimated range: %s - %s\n",
		domain.FormatMoney(res.LowEstimate), domain.FormatMoney(res.HighEstimate))
	return err
}

func writePDF(filename string, est report.Estimate) error {
	body, err := report.GeneratePDF(est)
	if err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	if err := os.WriteFile(filename, body, 0644); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// optionPrice — цена опции для подсказки; для размера — коэффициент
func optionPrice(g domain.OptionGroup, opt domain.PoolOption) string {
	if g.ID == domain.GroupPoolSize {
		return fmt.Sprintf("x%g", opt.Price.Float(1))
	}
	v := domain.RoundHalfUp(opt.Price.Float(0))
	switch {
	case g.ID == domain.GroupPoolModel:
		return domain.FormatMoney(v)
	case v == 0:
		return "included"
	}
	return "+" + domain.FormatMoney(v)
}
