// Package bridge is the command channel between the wizard pages and the
// native host: JSON commands out, HandleStudio messages in.
package bridge

import (
	"encoding/json"

	"github.com/ruminaider/slicer-guide/internal/result"
)

// Outbound command names.
const (
	CmdRequestProfile         = "request_userguide_profile"
	CmdSaveModels             = "save_userguide_models"
	CmdSaveFilaments          = "save_userguide_filaments"
	CmdFinish                 = "user_guide_finish"
	CmdCancel                 = "user_guide_cancel"
	CmdSaveRegion             = "save_region"
	CmdNetworkPluginInstall   = "network_plugin_install"
	CmdPrivateChoice          = "user_private_choice"
	CmdStealthMode            = "save_stealth_mode"
	CmdUserClause             = "user_clause"
	CmdRequestCustomFilaments = "request_custom_filaments"
	CmdCreateCustomFilament   = "create_custom_filament"
	CmdModifyCustomFilament   = "modify_custom_filament"
	CmdClosePage              = "close_page"
)

// Command is one outbound message. SequenceID is stamped by the Channel.
type Command struct {
	SequenceID int64  `json:"sequence_id"`
	Command    string `json:"command"`
	Data       any    `json:"data,omitempty"`
	Region     string `json:"region,omitempty"`
	ID         string `json:"id,omitempty"`
}

// Envelope is an outbound command as the host decodes it.
type Envelope struct {
	SequenceID json.RawMessage `json:"sequence_id"`
	Command    string          `json:"command"`
	Data       json.RawMessage `json:"data,omitempty"`
	Region     string          `json:"region,omitempty"`
	ID         string          `json:"id,omitempty"`
}

// Action is the {"action": ...} data shape shared by several commands.
type Action struct {
	Action string `json:"action"`
}

// FilamentList is the save_userguide_filaments data shape.
type FilamentList struct {
	Filament []string `json:"filament"`
}

// RequestProfile asks the host for the wizard profile.
func RequestProfile() Command {
	return Command{Command: CmdRequestProfile}
}

// SaveModels sends the serialized machine selection.
func SaveModels(m result.Machines) Command {
	return Command{Command: CmdSaveModels, Data: m}
}

// SaveFilaments sends the raw preset keys of the selected filament rows.
func SaveFilaments(keys []string) Command {
	if keys == nil {
		keys = []string{}
	}
	return Command{Command: CmdSaveFilaments, Data: FilamentList{Filament: keys}}
}

// Finish ends the wizard.
func Finish() Command {
	return Command{Command: CmdFinish, Data: Action{Action: "finish"}}
}

// Cancel abandons the wizard.
func Cancel() Command {
	return Command{Command: CmdCancel}
}

// SaveRegion stores the chosen region.
func SaveRegion(region string) Command {
	return Command{Command: CmdSaveRegion, Region: region}
}

// NetworkPluginInstall records whether the network plugin should be
// installed after the wizard.
func NetworkPluginInstall(install bool) Command {
	return Command{Command: CmdNetworkPluginInstall, Data: Action{Action: yesNo(install)}}
}

// PrivateChoice records the privacy agreement choice.
func PrivateChoice(agree bool) Command {
	action := "refuse"
	if agree {
		action = "agree"
	}
	return Command{Command: CmdPrivateChoice, Data: Action{Action: action}}
}

// StealthMode records the stealth mode choice.
func StealthMode(on bool) Command {
	return Command{Command: CmdStealthMode, Data: Action{Action: yesNo(on)}}
}

// UserClause records acceptance or refusal of the user clause.
func UserClause(accept bool) Command {
	action := "refuse"
	if accept {
		action = "agree"
	}
	return Command{Command: CmdUserClause, Data: Action{Action: action}}
}

// RequestCustomFilaments asks for the user's custom filament list.
func RequestCustomFilaments() Command {
	return Command{Command: CmdRequestCustomFilaments}
}

// CreateCustomFilament opens the host's filament creation dialog.
func CreateCustomFilament() Command {
	return Command{Command: CmdCreateCustomFilament}
}

// ModifyCustomFilament opens the host's editor for a custom filament.
func ModifyCustomFilament(id string) Command {
	return Command{Command: CmdModifyCustomFilament, ID: id}
}

// ClosePage closes the wizard window.
func ClosePage() Command {
	return Command{Command: CmdClosePage}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
