package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ruminaider/slicer-guide/internal/guide"
	"github.com/ruminaider/slicer-guide/internal/host"
	"github.com/ruminaider/slicer-guide/internal/profile"
	"github.com/ruminaider/slicer-guide/internal/result"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var (
	inspectMode   string
	inspectQuery  string
	inspectFormat string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <profile.json>",
	Short: "Show the filament page a profile would produce",
	Long:  "Builds the filament page for a profile without a terminal UI: facets, visible rows and the default selection.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, _, err := newLogger(cfg, false)
		if err != nil {
			return err
		}
		opts, err := guideOptions(cfg, inspectMode, log)
		if err != nil {
			return err
		}
		payload, err := host.LoadPayload(args[0])
		if err != nil {
			return err
		}

		// Match what the host would hand the page.
		p := profile.Build(host.New(payload, log).Payload())
		if err := p.Validate(); err != nil {
			return err
		}
		report := buildReport(p, opts, inspectQuery)

		switch inspectFormat {
		case "yaml":
			out, err := yaml.Marshal(report)
			if err != nil {
				return fmt.Errorf("encoding report: %w", err)
			}
			fmt.Print(string(out))
			return nil
		case "text":
			printReport(os.Stdout, report)
			return nil
		default:
			return fmt.Errorf("unknown format %q", inspectFormat)
		}
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectMode, "mode", "", "Default filament selection: materials or model-only")
	inspectCmd.Flags().StringVarP(&inspectQuery, "query", "q", "", "Text filter applied to filament rows")
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "text", "Output format: text or yaml")
}

type inspectRow struct {
	Name    string   `yaml:"name"`
	Vendor  string   `yaml:"vendor"`
	Type    string   `yaml:"type"`
	Checked bool     `yaml:"checked"`
	Keys    []string `yaml:"keys"`
}

type inspectReport struct {
	Defaulted bool         `yaml:"defaulted"`
	Printers  []string     `yaml:"printers"`
	Types     []string     `yaml:"types"`
	Vendors   []string     `yaml:"vendors"`
	Rows      []inspectRow `yaml:"rows"`
	Hidden    int          `yaml:"hidden"`
	Selected  []string     `yaml:"selected"`
}

// buildReport opens the filament page for p and records its initial state.
func buildReport(p profile.Profile, opts guide.Options, query string) inspectReport {
	fp, st := guide.NewFilamentsPage(p, opts)
	st = fp.SetQuery(st, query)

	r := inspectReport{Defaulted: fp.Defaulted()}
	for _, v := range fp.Machines(st).Values() {
		r.Printers = append(r.Printers, v.Label)
	}
	for _, v := range st.Types.Values() {
		r.Types = append(r.Types, v.Label)
	}
	for _, v := range st.Vendors.Values() {
		r.Vendors = append(r.Vendors, v.Label)
	}
	visible := fp.Visible(st)
	for _, row := range visible {
		r.Rows = append(r.Rows, inspectRow{
			Name:    row.ShortName,
			Vendor:  row.Vendor,
			Type:    row.Type,
			Checked: fp.Checked(st, row),
			Keys:    row.Keys,
		})
	}
	r.Hidden = len(fp.Rows()) - len(visible)

	if filaments, err := result.SerializeFilaments(st.Store); err == nil {
		r.Selected = filaments.Keys(fp.Rows())
	}
	return r
}

func printReport(w io.Writer, r inspectReport) {
	fmt.Fprintf(w, "Printers: %s\n", strings.Join(r.Printers, ", "))
	fmt.Fprintf(w, "Types:    %s\n", strings.Join(r.Types, ", "))
	fmt.Fprintf(w, "Vendors:  %s\n\n", strings.Join(r.Vendors, ", "))

	for _, row := range r.Rows {
		check := "[ ]"
		if row.Checked {
			check = "[x]"
		}
		fmt.Fprintf(w, "  %s %s  (%s · %s)\n", check, row.Name, row.Vendor, row.Type)
	}
	if r.Hidden > 0 {
		fmt.Fprintf(w, "  ... %d hidden\n", r.Hidden)
	}

	fmt.Fprintln(w)
	if r.Defaulted {
		fmt.Fprintln(w, "Default selection applied.")
	}
	if len(r.Selected) == 0 {
		fmt.Fprintln(w, "Nothing selected.")
		return
	}
	fmt.Fprintf(w, "Would save %d filament(s):\n", len(r.Selected))
	for _, k := range r.Selected {
		fmt.Fprintf(w, "  - %s\n", k)
	}
}
