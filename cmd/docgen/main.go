// Command docgen renders a quote or invoice from a JSON file.
//
//	docgen [-conf config.yml] [-out dir] [-base64] [-totals] document.json
//
// The JSON has the same shape as the body of POST /v1/render. Use "-" to read stdin.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"easywork/entity"
	"easywork/internal/calc"
	"easywork/internal/config"
	"easywork/internal/export"
	"easywork/internal/format"
	"easywork/lib/sl"
)

func main() {
	configPath := flag.String("conf", "", "path to config file with a document section")
	outDir := flag.String("out", "", "output directory, overrides document.output_dir")
	asBase64 := flag.Bool("base64", false, "print the PDF as base64 instead of writing a file")
	totals := flag.Bool("totals", false, "print totals instead of rendering")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})).With(sl.Module("docgen"))
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: docgen [flags] document.json")
		flag.PrintDefaults()
		os.Exit(2)
	}

	settings := config.Document{
		Locale:         "nb-NO",
		Currency:       "NOK",
		CurrencySymbol: "kr",
		DefaultVatRate: 25,
		OutputDir:      ".",
	}
	if *configPath != "" {
		settings = config.MustLoad(*configPath).Document
	}
	if *outDir != "" {
		settings.OutputDir = *outDir
	}

	if err := run(flag.Arg(0), settings, *asBase64, *totals, os.Stdout); err != nil {
		log.Error("docgen failed", slog.String("input", flag.Arg(0)), sl.Err(err))
		os.Exit(1)
	}
}

func readRequest(path string) (*entity.DocumentRequest, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	var req entity.DocumentRequest
	if err = json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err = req.Bind(nil); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return &req, nil
}

func run(path string, settings config.Document, asBase64, totals bool, out io.Writer) error {
	formatter, err := format.New(settings.Locale, settings.Currency, settings.CurrencySymbol)
	if err != nil {
		return err
	}
	req, err := readRequest(path)
	if err != nil {
		return err
	}
	doc := req.Document(entity.NewNumber(settings.DefaultVatRate))

	if totals {
		return printTotals(out, formatter, calc.Aggregate(doc.Items))
	}

	artifact, err := export.New(formatter, settings.QuoteTerms).Export(doc)
	if err != nil {
		return err
	}
	if asBase64 {
		_, err = fmt.Fprintln(out, artifact.Base64())
		return err
	}
	saved, err := artifact.Save(settings.OutputDir)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, saved)
	return err
}

func printTotals(out io.Writer, f *format.Formatter, res *calc.Result) error {
	labels := f.Labels()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, line := range res.Lines {
		r := line.Figures.Rounded()
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", line.Index+1, line.Item.Description, f.Money(r.Subtotal), f.Money(r.Total), f.Margin(r.Margin))
	}
	t := res.Totals.Rounded()
	fmt.Fprintf(tw, "\t%s\t%s\t\t\t\n", labels.Subtotal, f.Money(t.Subtotal))
	fmt.Fprintf(tw, "\t%s\t%s\t\t\t\n", labels.Vat, f.Money(t.VatAmount))
	fmt.Fprintf(tw, "\t%s\t%s\t\t\t\n", labels.Quote.Total, f.Money(t.Total))
	fmt.Fprintf(tw, "\tDG\t%s\t%s\t\t\n", f.Money(t.Profit), f.Margin(t.Margin))
	return tw.Flush()
}
