package profile

import "strings"

// Payload is the wire form of the wizard profile as the host keeps it.
// Model is nil when the host sent no "model" field.
type Payload struct {
	Model                      []MachineRecord           `json:"model"`
	Filament                   map[string]FilamentRecord `json:"filament"`
	Region                     string                    `json:"region,omitempty"`
	NetworkPluginInstall       string                    `json:"network_plugin_install"`
	NetworkPluginCompatibility string                    `json:"network_plugin_compability"`
	StealthMode                Flag                      `json:"stealth_mode"`
}

// MachineRecord is one entry of the payload "model" array.
type MachineRecord struct {
	Model          string `json:"model"`
	Vendor         string `json:"vendor"`
	NozzleDiameter string `json:"nozzle_diameter"`
	NozzleSelected string `json:"nozzle_selected"`
	Materials      string `json:"materials"`
	Cover          string `json:"cover,omitempty"`
	SubPath        string `json:"sub_path,omitempty"`
}

// FilamentRecord is one value of the payload "filament" object.
type FilamentRecord struct {
	Name     string `json:"name"`
	Vendor   string `json:"vendor"`
	Type     string `json:"type"`
	Models   string `json:"models"`
	Selected Flag   `json:"selected"`
	SubPath  string `json:"sub_path,omitempty"`
}

// Flag is a boolean the host encodes as 0/1, "0"/"1" or true/false. It is
// written back as a 0/1 number.
type Flag bool

// UnmarshalJSON accepts numeric, string and boolean encodings. Any other
// value reads as false.
func (f *Flag) UnmarshalJSON(b []byte) error {
	switch strings.Trim(string(b), `"`) {
	case "1", "true":
		*f = true
	default:
		*f = false
	}
	return nil
}

// MarshalJSON writes the flag as 0 or 1.
func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}
