// Package profile holds the read-only dataset the host sends to the setup
// wizard: printer models, filaments and global install flags.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoModels is returned by Validate when the payload carried no "model"
// field. Pages treat this as "render nothing", not as a failure.
var ErrNoModels = errors.New("profile has no model list")

// Machine is one printer model offered by the wizard.
type Machine struct {
	Vendor           string
	Model            string
	NozzleDiameters  []string
	NozzleSelected   []string
	DefaultMaterials []string
	CoverImagePath   string
}

// Filament is one raw filament preset.
type Filament struct {
	Key             string // payload map key, the full preset name
	Name            string
	ShortName       string
	Vendor          string
	Type            string
	Compatibility   Compatibility
	DefaultSelected bool
}

// Profile is the decoded, immutable view of a Payload.
type Profile struct {
	HasModels               bool
	Region                  string
	Machines                []Machine
	Filaments               []Filament // ordered by key
	NetworkPluginInstalled  bool
	NetworkPluginCompatible bool
	StealthMode             bool
}

// Validate reports ErrNoModels for a payload without a model list.
func (p Profile) Validate() error {
	if !p.HasModels {
		return ErrNoModels
	}
	return nil
}

// Machine returns the machine with the given model name.
func (p Profile) Machine(model string) (Machine, bool) {
	for _, m := range p.Machines {
		if m.Model == model {
			return m, true
		}
	}
	return Machine{}, false
}

// Decode parses the "response" object of a response_userguide_profile
// message.
func Decode(data []byte) (Profile, error) {
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return Profile{}, fmt.Errorf("decoding profile: %w", err)
	}
	return Build(payload), nil
}

// Build converts the wire payload into a Profile. Filaments are ordered by
// key, matching the host's sorted JSON object.
func Build(payload Payload) Profile {
	p := Profile{
		HasModels:               payload.Model != nil,
		Region:                  payload.Region,
		NetworkPluginInstalled:  payload.NetworkPluginInstall == "1",
		NetworkPluginCompatible: payload.NetworkPluginCompatibility == "1",
		StealthMode:             bool(payload.StealthMode),
	}

	for _, rec := range payload.Model {
		diameters := SplitList(strings.ReplaceAll(rec.NozzleDiameter, " ", ""))
		allowed := make(map[string]bool, len(diameters))
		for _, d := range diameters {
			allowed[d] = true
		}
		var selected []string
		for _, n := range SplitList(rec.NozzleSelected) {
			if allowed[n] {
				selected = append(selected, n)
			}
		}
		p.Machines = append(p.Machines, Machine{
			Vendor:           rec.Vendor,
			Model:            rec.Model,
			NozzleDiameters:  diameters,
			NozzleSelected:   selected,
			DefaultMaterials: SplitList(rec.Materials),
			CoverImagePath:   rec.Cover,
		})
	}

	keys := make([]string, 0, len(payload.Filament))
	for k := range payload.Filament {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		rec := payload.Filament[k]
		name := rec.Name
		if name == "" {
			name = k
		}
		p.Filaments = append(p.Filaments, Filament{
			Key:             k,
			Name:            name,
			ShortName:       ShortName(name),
			Vendor:          rec.Vendor,
			Type:            rec.Type,
			Compatibility:   ParseCompatibility(rec.Models),
			DefaultSelected: bool(rec.Selected),
		})
	}
	return p
}

// ShortName returns the preset name up to the first "@", trimmed.
func ShortName(name string) string {
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// SplitList splits a ";"-separated list, trimming entries and dropping empty
// and repeated ones. Order is preserved.
func SplitList(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}
