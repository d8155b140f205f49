// Package host is an in-process stand-in for the slicer's native side of the
// wizard. It keeps the profile payload, applies the commands the pages send,
// and queues the host messages the pages expect back.
package host

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/ruminaider/slicer-guide/internal/bridge"
	"github.com/ruminaider/slicer-guide/internal/profile"
	"github.com/ruminaider/slicer-guide/internal/result"
)

// Sequence ids the host stamps on its replies.
const (
	profileSequenceID = "10001"
	customSequenceID  = "2000"
)

// Outcome is how the wizard ended.
type Outcome string

const (
	OutcomeOpen      Outcome = "open"
	OutcomeFinished  Outcome = "finished"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeClosed    Outcome = "closed"
)

// Host holds the profile payload and answers wizard commands. It implements
// bridge.Poster; replies are queued until Drain.
type Host struct {
	mu      sync.Mutex
	payload profile.Payload
	custom  []bridge.CustomFilament
	outbox  [][]byte
	outcome Outcome
	install bool
	privacy string
	clause  string
	log     *slog.Logger
}

// New returns a host over payload. A profile with a single machine and no
// nozzle selection gets all of that machine's nozzles selected.
func New(payload profile.Payload, log *slog.Logger) *Host {
	if log == nil {
		log = slog.Default()
	}
	h := &Host{payload: payload, outcome: OutcomeOpen, log: log}
	h.payload = h.Payload()
	if len(h.payload.Model) == 1 && h.payload.Model[0].NozzleSelected == "" {
		h.payload.Model[0].NozzleSelected = h.payload.Model[0].NozzleDiameter
	}
	return h
}

// LoadPayload reads a profile payload from a JSON file.
func LoadPayload(path string) (profile.Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return profile.Payload{}, fmt.Errorf("reading profile: %w", err)
	}
	var p profile.Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return profile.Payload{}, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return p, nil
}

// SetCustomFilaments replaces the user's custom filament list.
func (h *Host) SetCustomFilaments(list []bridge.CustomFilament) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.custom = append([]bridge.CustomFilament(nil), list...)
}

// PostMessage applies one outbound wizard command.
func (h *Host) PostMessage(data []byte) error {
	var env bridge.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decoding command: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.log.Debug("host received command", "command", env.Command)

	switch env.Command {
	case bridge.CmdRequestProfile:
		return h.queue(map[string]any{
			"command":     bridge.CmdProfileResponse,
			"sequence_id": profileSequenceID,
			"response":    h.payload,
		})

	case bridge.CmdSaveModels:
		var records map[string]result.MachineRecord
		if err := json.Unmarshal(env.Data, &records); err != nil {
			return fmt.Errorf("decoding %s: %w", env.Command, err)
		}
		h.saveModels(records)

	case bridge.CmdSaveFilaments:
		var list bridge.FilamentList
		if err := json.Unmarshal(env.Data, &list); err != nil {
			return fmt.Errorf("decoding %s: %w", env.Command, err)
		}
		h.saveFilaments(list.Filament)

	case bridge.CmdSaveRegion:
		h.payload.Region = env.Region

	case bridge.CmdNetworkPluginInstall:
		a, err := action(env)
		if err != nil {
			return err
		}
		// An already compatible plugin needs no install.
		h.install = a == "yes" && h.payload.NetworkPluginCompatibility != "1"

	case bridge.CmdStealthMode:
		a, err := action(env)
		if err != nil {
			return err
		}
		h.payload.StealthMode = profile.Flag(a == "yes")

	case bridge.CmdPrivateChoice:
		a, err := action(env)
		if err != nil {
			return err
		}
		h.privacy = a

	case bridge.CmdUserClause:
		a, err := action(env)
		if err != nil {
			return err
		}
		h.clause = a

	case bridge.CmdRequestCustomFilaments:
		return h.queueCustom()

	case bridge.CmdCreateCustomFilament:
		h.custom = append(h.custom, bridge.CustomFilament{
			Name: fmt.Sprintf("My Filament %d", len(h.custom)+1),
			ID:   "P" + uuid.New().String()[:7],
		})
		return h.queueCustom()

	case bridge.CmdModifyCustomFilament:
		h.log.Info("custom filament edit requested", "id", env.ID)

	case bridge.CmdFinish:
		h.outcome = OutcomeFinished
	case bridge.CmdCancel:
		h.outcome = OutcomeCancelled
	case bridge.CmdClosePage:
		h.outcome = OutcomeClosed

	default:
		h.log.Warn("host ignoring command", "command", env.Command)
	}
	return nil
}

// Drain returns the queued host messages and empties the queue.
func (h *Host) Drain() [][]byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.outbox
	h.outbox = nil
	return out
}

// Payload returns a copy of the current payload.
func (h *Host) Payload() profile.Payload {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := h.payload
	p.Model = append([]profile.MachineRecord(nil), h.payload.Model...)
	p.Filament = make(map[string]profile.FilamentRecord, len(h.payload.Filament))
	for k, v := range h.payload.Filament {
		p.Filament[k] = v
	}
	return p
}

func (h *Host) queue(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding host message: %w", err)
	}
	h.outbox = append(h.outbox, data)
	return nil
}

func (h *Host) queueCustom() error {
	list := h.custom
	if list == nil {
		list = []bridge.CustomFilament{}
	}
	return h.queue(map[string]any{
		"command":     bridge.CmdUpdateCustomFilaments,
		"sequence_id": customSequenceID,
		"data":        list,
	})
}

// saveModels clears every nozzle selection, then sets the ones sent.
func (h *Host) saveModels(records map[string]result.MachineRecord) {
	for i := range h.payload.Model {
		h.payload.Model[i].NozzleSelected = ""
	}
	for _, rec := range records {
		found := false
		for i := range h.payload.Model {
			if h.payload.Model[i].Model == rec.Model {
				h.payload.Model[i].NozzleSelected = rec.NozzleDiameter
				found = true
			}
		}
		if !found {
			h.log.Warn("saved model not in profile", "model", rec.Model)
		}
	}
}

// saveFilaments clears every filament selection, then selects the keys sent.
func (h *Host) saveFilaments(keys []string) {
	for k, f := range h.payload.Filament {
		f.Selected = false
		h.payload.Filament[k] = f
	}
	for _, k := range keys {
		f, ok := h.payload.Filament[k]
		if !ok {
			h.log.Warn("saved filament not in profile", "filament", k)
			continue
		}
		f.Selected = true
		h.payload.Filament[k] = f
	}
}

func action(env bridge.Envelope) (string, error) {
	var a bridge.Action
	if err := json.Unmarshal(env.Data, &a); err != nil {
		return "", fmt.Errorf("decoding %s: %w", env.Command, err)
	}
	return a.Action, nil
}

// MachineSummary is one model with its selected nozzles.
type MachineSummary struct {
	Vendor  string   `yaml:"vendor"`
	Model   string   `yaml:"model"`
	Nozzles []string `yaml:"nozzles"`
}

// Summary is the host state after the wizard, as printed by the CLI.
type Summary struct {
	Outcome         Outcome          `yaml:"outcome"`
	Region          string           `yaml:"region,omitempty"`
	NetworkPlugin   bool             `yaml:"install_network_plugin"`
	Privacy         string           `yaml:"privacy,omitempty"`
	UserClause      string           `yaml:"user_clause,omitempty"`
	StealthMode     bool             `yaml:"stealth_mode"`
	Machines        []MachineSummary `yaml:"machines"`
	Filaments       []string         `yaml:"filaments"`
	CustomFilaments int              `yaml:"custom_filaments"`
}

// Summary reports the saved selections.
func (h *Host) Summary() Summary {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := Summary{
		Outcome:         h.outcome,
		Region:          h.payload.Region,
		NetworkPlugin:   h.install,
		Privacy:         h.privacy,
		UserClause:      h.clause,
		StealthMode:     bool(h.payload.StealthMode),
		CustomFilaments: len(h.custom),
	}
	for _, m := range h.payload.Model {
		nozzles := profile.SplitList(m.NozzleSelected)
		if len(nozzles) == 0 {
			continue
		}
		s.Machines = append(s.Machines, MachineSummary{Vendor: m.Vendor, Model: m.Model, Nozzles: nozzles})
	}
	for k, f := range h.payload.Filament {
		if f.Selected {
			s.Filaments = append(s.Filaments, k)
		}
	}
	sort.Strings(s.Filaments)
	return s
}
