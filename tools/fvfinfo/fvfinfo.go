package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mogaika/scrap_remaster/d3d"
)

type report struct {
	FVF    string     `yaml:"fvf"`
	Format string     `yaml:"format"`
	Size   int        `yaml:"size"`
	Layout d3d.Layout `yaml:"layout"`
}

func newReport(f d3d.FVF) *report {
	return &report{
		FVF:    fmt.Sprintf("0x%x", uint32(f)),
		Format: f.String(),
		Size:   f.VertexSize(),
		Layout: d3d.NewLayout(f),
	}
}

func printText(w io.Writer, r *report) {
	fmt.Fprintf(w, "%s %s: %d bytes\n", r.FVF, r.Format, r.Size)
	for _, e := range r.Layout.Elements {
		fmt.Fprintf(w, "  +%-3d %v%d x%d\n", e.Offset, e.Usage, e.Index, e.Components)
	}
	if layoutSize := r.Layout.Size(); layoutSize != r.Size {
		fmt.Fprintf(w, "  declaration spans %d bytes\n", layoutSize)
	}
}

func main() {
	var asYaml bool
	flag.BoolVar(&asYaml, "yaml", false, "Print yaml document instead of text")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-yaml] fvf...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	reports := make([]*report, 0, flag.NArg())
	for _, arg := range flag.Args() {
		f, err := d3d.ParseFVF(arg)
		if err != nil {
			log.Fatal(err)
		}
		reports = append(reports, newReport(f))
	}

	if asYaml {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			log.Fatal(err)
		}
		enc.Close()
		return
	}
	for _, r := range reports {
		printText(os.Stdout, r)
	}
}
