package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/ruminaider/slicer-guide/cmd/slicer-guide/tui"
	"github.com/ruminaider/slicer-guide/internal/bridge"
	"github.com/ruminaider/slicer-guide/internal/guide"
	"github.com/ruminaider/slicer-guide/internal/host"
	"github.com/ruminaider/slicer-guide/internal/profile"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var (
	wizardProfile     string
	wizardMode        string
	wizardSkipPrompts bool
	wizardWrite       bool
)

// regions are the choices of the region prompt.
var regions = []string{"Asia-Pacific", "China", "Europe", "North America", "Others"}

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Run the interactive setup wizard",
	Long:  "Runs the region prompts and then the printer and filament pages against a profile file, printing the saved selection when done.",
	RunE:  runWizard,
}

func init() {
	wizardCmd.Flags().StringVarP(&wizardProfile, "profile", "p", "", "Profile JSON file (response_userguide_profile payload)")
	wizardCmd.Flags().StringVar(&wizardMode, "mode", "", "Default filament selection: materials or model-only")
	wizardCmd.Flags().BoolVar(&wizardSkipPrompts, "skip-prompts", false, "Skip the region, plugin and privacy prompts")
	wizardCmd.Flags().BoolVarP(&wizardWrite, "write", "w", false, "Write the saved selection back to the profile file")
	_ = wizardCmd.MarkFlagRequired("profile")
}

func runWizard(cmd *cobra.Command, args []string) error {
	// TTY guard: the pages need a terminal.
	if !term.IsTerminal(os.Stdin.Fd()) {
		return errors.New("wizard needs an interactive terminal; use 'slicer-guide inspect' instead")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	opts, err := guideOptions(cfg, wizardMode, log)
	if err != nil {
		return err
	}
	payload, err := host.LoadPayload(wizardProfile)
	if err != nil {
		return err
	}

	h := host.New(payload, log)
	w := guide.NewWizard(bridge.NewChannel(h, log), opts)
	log.Info("wizard started", "profile", wizardProfile, "machines", len(payload.Model), "filaments", len(payload.Filament))

	if !wizardSkipPrompts {
		p := profile.Build(payload)
		region := p.Region
		if region == "" {
			region = cfg.Region
		}
		if err := runPrompts(w, region, offerPluginInstall(p)); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Println("Setup cancelled.")
				return nil
			}
			return err
		}
	}

	final, err := tea.NewProgram(tui.NewModel(w, h), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(tui.Model); ok && m.Cancelled {
		fmt.Println("Setup cancelled. Nothing was saved.")
		return nil
	}

	out, err := yaml.Marshal(h.Summary())
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	fmt.Print(string(out))

	if wizardWrite {
		data, err := json.MarshalIndent(h.Payload(), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding profile: %w", err)
		}
		if err := os.WriteFile(wizardProfile, data, 0o644); err != nil {
			return fmt.Errorf("writing profile: %w", err)
		}
		fmt.Printf("Saved selection to %s\n", wizardProfile)
	}
	return nil
}

// offerPluginInstall reports whether the network plugin still has to be
// installed or replaced.
func offerPluginInstall(p profile.Profile) bool {
	return !p.NetworkPluginInstalled || !p.NetworkPluginCompatible
}

// runPrompts asks the questions that precede the printer pages and forwards
// the answers to the host.
func runPrompts(w *guide.Wizard, region string, offerPlugin bool) error {
	if region == "" {
		region = regions[0]
	}
	installPlugin := offerPlugin
	agree := true

	fields := []huh.Field{
		huh.NewSelect[string]().
			Title("Where are you located?").
			Description("Used to pick the nearest cloud service").
			Options(huh.NewOptions(regions...)...).
			Value(&region),
	}
	if offerPlugin {
		fields = append(fields, huh.NewConfirm().
			Title("Install the network plugin?").
			Description("Needed for cloud printing and remote monitoring").
			Value(&installPlugin))
	}
	fields = append(fields, huh.NewConfirm().
		Title("Share anonymous usage data?").
		Affirmative("Agree").
		Negative("Refuse").
		Value(&agree))

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}

	w.SaveRegion(region)
	w.SetNetworkPlugin(installPlugin)
	w.SetPrivacy(agree)
	return nil
}
