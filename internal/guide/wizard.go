// Package guide drives the setup wizard pages: printer models, then
// filaments, then finish.
package guide

import (
	"errors"
	"log/slog"

	"github.com/ruminaider/slicer-guide/internal/bridge"
	"github.com/ruminaider/slicer-guide/internal/profile"
	"github.com/ruminaider/slicer-guide/internal/selection"
)

// ErrNoProfile is returned when a page is confirmed before its profile
// arrived.
var ErrNoProfile = errors.New("profile not loaded")

// Step is the current wizard page.
type Step int

const (
	StepModels Step = iota
	StepFilaments
	StepDone
)

// String returns the page name.
func (s Step) String() string {
	switch s {
	case StepModels:
		return "models"
	case StepFilaments:
		return "filaments"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// Wizard is the page shell. It routes host messages to the current page
// and forwards user intent as commands.
type Wizard struct {
	ch   *bridge.Channel
	opts Options
	log  *slog.Logger

	step    Step
	profile profile.Profile

	Models     *ModelsPage
	ModelStore selection.Store

	Filaments      *FilamentsPage
	FilamentsState FilamentsState

	CustomFilaments []bridge.CustomFilament
}

// NewWizard returns a wizard sending on ch.
func NewWizard(ch *bridge.Channel, opts Options) *Wizard {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	opts.Log = log
	return &Wizard{ch: ch, opts: opts, log: log}
}

// Step returns the current page.
func (w *Wizard) Step() Step {
	return w.step
}

// Profile returns the last profile received.
func (w *Wizard) Profile() profile.Profile {
	return w.profile
}

// Start opens the models page and requests the profile.
func (w *Wizard) Start() {
	w.step = StepModels
	w.ch.Send(bridge.RequestProfile())
}

// Receive is the HandleStudio entry point for raw host messages.
func (w *Wizard) Receive(data []byte) error {
	err := bridge.HandleStudio(data, w)
	if errors.Is(err, bridge.ErrUnknownCommand) {
		w.log.Warn("ignoring host message", "err", err)
	} else if err != nil {
		w.log.Error("bad host message", "err", err)
	}
	return err
}

// HandleProfile builds the current page from a fresh profile. A profile
// without a model list renders nothing.
func (w *Wizard) HandleProfile(m bridge.ProfileResponse) {
	if !m.Profile.HasModels {
		w.log.Debug("profile has no models, skipping render")
		return
	}
	w.profile = m.Profile
	switch w.step {
	case StepModels:
		w.Models, w.ModelStore = NewModelsPage(m.Profile, w.log)
	case StepFilaments:
		w.Filaments, w.FilamentsState = NewFilamentsPage(m.Profile, w.opts)
	case StepDone:
		w.log.Debug("profile received after finish")
	}
}

// HandleCustomFilaments records the user's custom filament list.
func (w *Wizard) HandleCustomFilaments(m bridge.CustomFilamentsUpdate) {
	w.CustomFilaments = m.Filaments
}

// ConfirmModels saves the printer selection and moves to the filament page.
func (w *Wizard) ConfirmModels() error {
	if w.Models == nil {
		return ErrNoProfile
	}
	if err := w.Models.Confirm(w.ModelStore, w.ch); err != nil {
		return err
	}
	w.step = StepFilaments
	w.Filaments = nil
	w.ch.Send(bridge.RequestProfile())
	w.ch.Send(bridge.RequestCustomFilaments())
	return nil
}

// Back returns from the filament page to the models page.
func (w *Wizard) Back() {
	if w.step != StepFilaments {
		return
	}
	w.step = StepModels
	w.Models = nil
	w.ch.Send(bridge.RequestProfile())
}

// ConfirmFilaments saves the filament selection and finishes the wizard.
func (w *Wizard) ConfirmFilaments() error {
	if w.Filaments == nil {
		return ErrNoProfile
	}
	if err := w.Filaments.Confirm(w.FilamentsState, w.ch); err != nil {
		return err
	}
	w.step = StepDone
	w.ch.Send(bridge.Finish())
	return nil
}

// Cancel abandons the wizard. Unsaved selections are dropped.
func (w *Wizard) Cancel() {
	w.step = StepDone
	w.ch.Send(bridge.Cancel())
}

// SaveRegion forwards the region choice.
func (w *Wizard) SaveRegion(region string) {
	w.ch.Send(bridge.SaveRegion(region))
}

// SetNetworkPlugin forwards the network plugin choice.
func (w *Wizard) SetNetworkPlugin(install bool) {
	w.ch.Send(bridge.NetworkPluginInstall(install))
}

// SetPrivacy forwards the privacy choice.
func (w *Wizard) SetPrivacy(agree bool) {
	w.ch.Send(bridge.PrivateChoice(agree))
}

// SetStealthMode forwards the stealth mode choice.
func (w *Wizard) SetStealthMode(on bool) {
	w.ch.Send(bridge.StealthMode(on))
}

// CreateCustomFilament asks the host to open its filament creation dialog.
// The host answers with update_custom_filaments.
func (w *Wizard) CreateCustomFilament() {
	w.ch.Send(bridge.CreateCustomFilament())
}

// ModifyCustomFilament asks the host to edit one custom filament.
func (w *Wizard) ModifyCustomFilament(id string) {
	w.ch.Send(bridge.ModifyCustomFilament(id))
}
