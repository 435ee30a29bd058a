package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/labelforge/sheet-engine/internal/label"
	"github.com/labelforge/sheet-engine/internal/layout"
	"github.com/labelforge/sheet-engine/internal/printer"
	"github.com/labelforge/sheet-engine/internal/renderer"
	"github.com/labelforge/sheet-engine/pkg/sheetformat"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "render":
		err = runRender(os.Args[2:])
	case "layout":
		err = runLayout(os.Args[2:])
	case "print":
		err = runPrint(os.Args[2:])
	case "papers":
		err = runPapers()
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: sheetctl <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  render <file.sheet> [-o dir] [-dpi n]   Render each page to a PNG")
	fmt.Println("  layout <file.sheet>                     Print the computed layout as JSON")
	fmt.Println("  print  <file.sheet> -host h [-port p]   Print to a network printer")
	fmt.Println("  papers                                  List paper presets")
}

// compute loads a sheet file and runs the layout engine on it.
func compute(path string) (*sheetformat.Sheet, *layout.Result, error) {
	sheet, err := sheetformat.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}

	items, err := label.Build(sheet.Labels)
	if err != nil {
		return nil, nil, err
	}

	result, err := layout.Compute(sheet.Settings, items)
	if err != nil {
		return nil, nil, err
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", warning.Field, warning.Message)
	}

	return sheet, result, nil
}

func runRender(args []string) error {
	flags := flag.NewFlagSet("render", flag.ExitOnError)
	outDir := flags.String("o", ".", "Output directory")
	dpi := flags.Int("dpi", 300, "Output resolution")
	flags.Parse(args)

	if flags.NArg() != 1 {
		return fmt.Errorf("render requires exactly one sheet file")
	}

	sheet, result, err := compute(flags.Arg(0))
	if err != nil {
		return err
	}

	r, err := renderer.New(*dpi)
	if err != nil {
		return err
	}

	base := sheet.Name
	if base == "" {
		base = "sheet"
	}

	for i := range result.Pages {
		img := r.RenderPage(&result.Pages[i])

		path := filepath.Join(*outDir, fmt.Sprintf("%s-%02d.png", base, i+1))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return fmt.Errorf("failed to encode %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}

		fmt.Printf("Wrote %s\n", path)
	}

	return nil
}

func runLayout(args []string) error {
	flags := flag.NewFlagSet("layout", flag.ExitOnError)
	flags.Parse(args)

	if flags.NArg() != 1 {
		return fmt.Errorf("layout requires exactly one sheet file")
	}

	_, result, err := compute(flags.Arg(0))
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}

func runPrint(args []string) error {
	flags := flag.NewFlagSet("print", flag.ExitOnError)
	host := flags.String("host", "", "Printer host")
	port := flags.Int("port", 9100, "Printer port")
	dpi := flags.Int("dpi", 203, "Printer resolution")
	flags.Parse(args)

	if flags.NArg() != 1 {
		return fmt.Errorf("print requires exactly one sheet file")
	}
	if *host == "" {
		return fmt.Errorf("-host is required")
	}

	_, result, err := compute(flags.Arg(0))
	if err != nil {
		return err
	}

	r, err := renderer.New(*dpi)
	if err != nil {
		return err
	}

	conn, err := printer.Connect(printer.Target{Type: "network", Host: *host, Port: *port})
	if err != nil {
		return err
	}
	defer conn.Close()

	for i := range result.Pages {
		if err := conn.Print(r.RenderPage(&result.Pages[i])); err != nil {
			return fmt.Errorf("failed to print page %d: %w", i+1, err)
		}
		fmt.Printf("Printed page %d/%d\n", i+1, len(result.Pages))
	}

	return nil
}

func runPapers() error {
	for _, name := range sheetformat.PaperNames() {
		size, _ := sheetformat.PaperSize(name)
		fmt.Printf("%-10s %6.1f x %6.1f mm\n", name, size.Width, size.Height)
	}
	return nil
}
