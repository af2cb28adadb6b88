package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"Ampere/internal/calc/electrical"
	"Ampere/internal/calc/recommend"
	"Ampere/internal/calc/report"

	"github.com/spf13/cobra"
)

var calcCmd = &cobra.Command{
	Use:   "calc <project-file>",
	Short: "Calculate a project and print the results",
	Long:  "Reads a project from .json, .yaml or .xlsx, calculates it and prints the summary, circuit table, warnings and bill of materials.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalc,
}

func init() {
	registerCalcFlags(calcCmd)
	rootCmd.AddCommand(calcCmd)
}

func registerCalcFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("pdf", "", "write a PDF report to this file")
	flags.String("xlsx", "", "write an xlsx report to this file")
	flags.String("json", "", "write the results as JSON to this file (- for stdout)")
	flags.String("author", "", "author shown on the PDF report")
	flags.String("lang", "", "message language: en or ar")
	flags.String("name", "", "project name (overrides the file)")
	flags.Float64("voltage", 0, "supply voltage in V (overrides the file)")
	flags.String("cable-type", "", "copper or aluminum (overrides the file)")
	flags.Float64("demand-factor", 0, "panel demand factor (overrides the file)")
	flags.Float64("safety-factor", 0, "safety factor (overrides the file)")
}

func runCalc(cmd *cobra.Command, args []string) error {
	p, err := loadProject(args[0])
	if err != nil {
		return err
	}
	settings := loadSettings()
	p = settings.apply(overrideProject(cmd, p))
	lang := settings.Lang
	if l, _ := cmd.Flags().GetString("lang"); l != "" {
		lang = l
	}
	lang = report.NormalizeLang(lang)

	out := cmd.OutOrStdout()
	p, err = electrical.Prepare(p)
	if err != nil {
		var verr *electrical.ValidationError
		if errors.As(err, &verr) {
			for _, issue := range verr.Issues {
				fmt.Fprintln(cmd.ErrOrStderr(), "-", report.LocalizeWarning(lang, issue))
			}
		}
		return err
	}
	res, err := electrical.Calculate(p)
	if err != nil {
		return err
	}

	jsonPath, _ := cmd.Flags().GetString("json")
	if jsonPath == "-" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResults(out, res, lang)
	printRecommendations(out, recommend.WireSizes(p, res))

	if jsonPath != "" {
		if err := writeJSON(jsonPath, res); err != nil {
			return err
		}
		fmt.Fprintln(out, "wrote", jsonPath)
	}
	if pdfPath, _ := cmd.Flags().GetString("pdf"); pdfPath != "" {
		author, _ := cmd.Flags().GetString("author")
		if err := writePDF(pdfPath, res, report.Meta{Author: author}); err != nil {
			return err
		}
		fmt.Fprintln(out, "wrote", pdfPath)
	}
	if xlsxPath, _ := cmd.Flags().GetString("xlsx"); xlsxPath != "" {
		if err := writeXLSX(xlsxPath, res, lang); err != nil {
			return err
		}
		fmt.Fprintln(out, "wrote", xlsxPath)
	}
	return nil
}

// overrideProject applies the project flags set on the command line. They
// win over both the file and the config settings.
func overrideProject(cmd *cobra.Command, p electrical.Project) electrical.Project {
	flags := cmd.Flags()
	if flags.Changed("name") {
		p.ProjectInfo.ProjectName, _ = flags.GetString("name")
	}
	if flags.Changed("voltage") {
		p.ProjectInfo.Voltage, _ = flags.GetFloat64("voltage")
	}
	if flags.Changed("cable-type") {
		v, _ := flags.GetString("cable-type")
		p.WiringInfo.CableType = electrical.CableType(v)
	}
	if flags.Changed("demand-factor") {
		p.PanelInfo.DemandFactor, _ = flags.GetFloat64("demand-factor")
	}
	if flags.Changed("safety-factor") {
		p.Specifications.SafetyFactor, _ = flags.GetFloat64("safety-factor")
	}
	return p
}

func printResults(w io.Writer, res electrical.CalculationResults, lang string) {
	info := res.ProjectInfo
	fmt.Fprintf(w, "%s (%s, %.0f V, %.0f Hz)\n\n", info.ProjectName, info.BuildingType, info.Voltage, info.Frequency)
	fmt.Fprintf(w, "Total load:     %.2f kW\n", res.TotalLoadKW)
	fmt.Fprintf(w, "Total current:  %.2f A\n", res.TotalCurrent)
	fmt.Fprintf(w, "Main breaker:   %g A\n", res.MainBreakerSize)
	fmt.Fprintf(w, "Main feeder:    %g mm²\n\n", res.MainFeederWireSize)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Circuit\tPower (W)\tCurrent (A)\tBreaker (A)\tWire (mm²)\tDrop (%)\t")
	for _, c := range res.CircuitResults {
		fmt.Fprintf(tw, "%s\t%.0f\t%.2f\t%g\t%g\t%.2f\t\n", c.Name, c.Power, c.Current, c.BreakerSize, c.WireSize, c.VoltageDrop)
	}
	tw.Flush()

	if len(res.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, warn := range res.Warnings {
			fmt.Fprintln(w, "  -", report.LocalizeWarning(lang, warn))
		}
	}

	fmt.Fprintln(w, "\nBill of materials:")
	for _, b := range res.Quantities.Breakers {
		fmt.Fprintf(w, "  Breaker %g A x %d\n", b.Size, b.Count)
	}
	for _, c := range res.Quantities.CableLengthsBySize {
		fmt.Fprintf(w, "  Cable %g mm²: %.0f m\n", c.Size, c.Length)
	}
	fmt.Fprintf(w, "  Distribution panel x %d\n", res.Quantities.Panels)
}

func printRecommendations(w io.Writer, recs []recommend.WireRecommendation) {
	if len(recs) == 0 {
		return
	}
	fmt.Fprintln(w, "\nWire recommendations:")
	for _, r := range recs {
		if !r.Feasible {
			fmt.Fprintf(w, "  %s: no standard size keeps the drop within %g%%, shorten the run below %.0f m\n", r.Name, electrical.VoltageDropLimit, r.MaxLength)
			continue
		}
		fmt.Fprintf(w, "  %s: %g mm² -> %g mm² (drop %.2f%% -> %.2f%%), or keep %g mm² up to %.0f m\n",
			r.Name, r.WireSize, r.RecommendedSize, r.VoltageDrop, r.RecommendedDrop, r.WireSize, r.MaxLength)
	}
}

func writeJSON(path string, res electrical.CalculationResults) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func writePDF(path string, res electrical.CalculationResults, meta report.Meta) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WritePDF(f, res, meta); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func writeXLSX(path string, res electrical.CalculationResults, lang string) error {
	f, err := report.Workbook(res, lang)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}
