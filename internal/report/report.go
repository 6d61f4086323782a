package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	domainStats "suicidestats/domain/stats"
	"suicidestats/domain/suicide"
	"suicidestats/internal/errors"
)

const bannerWidth = 96

// Writer renders an Analysis as the plain-text console report
type Writer struct {
	out io.Writer
	err error
}

// NewWriter creates a report writer targeting out
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write renders the record count, the rate summary, the four aggregate
// tables and the three fit tests, in that order
func (w *Writer) Write(a *domainStats.Analysis) error {
	country := a.Dataset.Country

	w.banner("General information")
	w.printf("Total %s records in the dataset: %d\n", country, a.Dataset.Len())

	w.banner(fmt.Sprintf("%s suicide-rate statistics (per 100k)", country))
	for _, e := range a.Summary.Entries() {
		if !e.Valid {
			w.printf("%-20s: n/a\n", e.Name)
			continue
		}
		w.printf("%-20s: %.5f\n", e.Name, e.Value)
	}
	if a.Summary.Missing > 0 {
		w.printf("(%d missing rates excluded)\n", a.Summary.Missing)
	}

	w.banner("Male vs female suicides")
	w.sexTable(a.SexByYear)

	w.banner(fmt.Sprintf("%s yearly means and totals", country))
	w.yearTable(a.Yearly)

	w.banner(fmt.Sprintf("%s mean suicide rate by age group (per 100k)", country))
	w.ageTable(a.AgeByYear)

	w.banner(fmt.Sprintf("%s suicides and GDP by generation", country))
	w.generationTable(a.Generations)

	for _, t := range a.Tests {
		w.banner(fmt.Sprintf("Kolmogorov-Smirnov test (%s distribution)", t.Distribution))
		if math.IsNaN(t.PValue) {
			w.printf("  Test statistic: n/a, p-value: n/a\n")
		} else {
			w.printf("  Test statistic: %.5f, p-value: %.5f\n", t.Statistic, t.PValue)
		}
		w.printf("  %s\n", t.Sentence())
	}

	if w.err != nil {
		return errors.Wrap(w.err, "failed to write report")
	}
	return nil
}

func (w *Writer) banner(title string) {
	title = " " + title + " "
	pad := bannerWidth - len([]rune(title))
	if pad < 6 {
		pad = 6
	}
	left := pad / 2
	w.printf("\n%s%s%s\n", strings.Repeat("═", left), title, strings.Repeat("═", pad-left))
}

func (w *Writer) sexTable(pivot domainStats.SexByYear) {
	tw := w.table()
	header := []string{"year"}
	for _, s := range pivot.Sexes {
		header = append(header, string(s))
	}
	fmt.Fprintln(tw, strings.Join(append(header, "total"), "\t")+"\t")
	for _, row := range pivot.Rows {
		cells := []string{fmt.Sprint(row.Year)}
		for _, s := range pivot.Sexes {
			cells = append(cells, fmt.Sprint(row.Count(s)))
		}
		cells = append(cells, fmt.Sprint(row.Total))
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	w.flush(tw)
}

func (w *Writer) yearTable(years []domainStats.YearSummary) {
	tw := w.table()
	fmt.Fprintf(tw, "year\t%s\t%s\t%s\t\n", suicide.ColumnRatePer100k, suicide.ColumnSuicides, suicide.ColumnGDPForYear)
	for _, y := range years {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t\n", y.Year, formatFloat(y.MeanRate, 6), y.Suicides, formatFloat(y.MeanGDP, 1))
	}
	w.flush(tw)
}

func (w *Writer) ageTable(pivot domainStats.AgeByYear) {
	tw := w.table()
	fmt.Fprintln(tw, "year\t"+strings.Join(pivot.AgeGroups, "\t")+"\t")
	for _, row := range pivot.Rows {
		cells := []string{fmt.Sprint(row.Year)}
		for _, age := range pivot.AgeGroups {
			cells = append(cells, formatFloat(row.Rate(age), 6))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	w.flush(tw)
}

func (w *Writer) generationTable(gens []domainStats.GenerationSummary) {
	tw := w.table()
	fmt.Fprintf(tw, "%s\t%s\t%s\t\n", suicide.ColumnGeneration, suicide.ColumnSuicides, suicide.ColumnGDPForYear)
	for _, g := range gens {
		fmt.Fprintf(tw, "%s\t%d\t%s\t\n", g.Generation, g.Suicides, formatFloat(g.MeanGDP, 1))
	}
	w.flush(tw)
}

func (w *Writer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(w.out, 0, 0, 2, ' ', tabwriter.AlignRight)
}

func (w *Writer) flush(tw *tabwriter.Writer) {
	if err := tw.Flush(); err != nil && w.err == nil {
		w.err = err
	}
}

func (w *Writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format, args...)
}

// formatFloat prints NaN cells as "-" so empty groups stay visible
func formatFloat(v float64, prec int) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.*f", prec, v)
}
