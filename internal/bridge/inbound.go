package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ruminaider/slicer-guide/internal/profile"
)

// Inbound command names.
const (
	CmdProfileResponse       = "response_userguide_profile"
	CmdUpdateCustomFilaments = "update_custom_filaments"
)

// ErrUnknownCommand is returned by Dispatch for a command it has no case for.
var ErrUnknownCommand = errors.New("unknown inbound command")

// Message is one decoded host message. The concrete types are
// ProfileResponse, CustomFilamentsUpdate and Unknown.
type Message interface {
	Name() string
}

// ProfileResponse carries the wizard profile.
type ProfileResponse struct {
	Payload profile.Payload
	Profile profile.Profile
}

// Name returns the command name.
func (ProfileResponse) Name() string { return CmdProfileResponse }

// CustomFilament is one user-defined filament preset.
type CustomFilament struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// CustomFilamentsUpdate carries the user's custom filament list.
type CustomFilamentsUpdate struct {
	Filaments []CustomFilament
}

// Name returns the command name.
func (CustomFilamentsUpdate) Name() string { return CmdUpdateCustomFilaments }

// Unknown is any message whose command is not recognised.
type Unknown struct {
	Command string
	Raw     json.RawMessage
}

// Name returns the command name.
func (u Unknown) Name() string { return u.Command }

type inboundEnvelope struct {
	Command    string          `json:"command"`
	SequenceID json.RawMessage `json:"sequence_id"`
	Response   json.RawMessage `json:"response"`
	Data       json.RawMessage `json:"data"`
}

// Decode parses a host message into its variant.
func Decode(data []byte) (Message, error) {
	var env inboundEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding host message: %w", err)
	}

	switch env.Command {
	case CmdProfileResponse:
		var payload profile.Payload
		if len(env.Response) > 0 && string(env.Response) != "null" {
			if err := json.Unmarshal(env.Response, &payload); err != nil {
				return nil, fmt.Errorf("decoding %s: %w", env.Command, err)
			}
		}
		return ProfileResponse{Payload: payload, Profile: profile.Build(payload)}, nil

	case CmdUpdateCustomFilaments:
		var list []CustomFilament
		if len(env.Data) > 0 && string(env.Data) != "null" {
			if err := json.Unmarshal(env.Data, &list); err != nil {
				return nil, fmt.Errorf("decoding %s: %w", env.Command, err)
			}
		}
		return CustomFilamentsUpdate{Filaments: list}, nil

	default:
		return Unknown{Command: env.Command, Raw: data}, nil
	}
}

// Handler receives decoded host messages.
type Handler interface {
	HandleProfile(ProfileResponse)
	HandleCustomFilaments(CustomFilamentsUpdate)
}

// Dispatch routes msg to h.
func Dispatch(msg Message, h Handler) error {
	switch m := msg.(type) {
	case ProfileResponse:
		h.HandleProfile(m)
	case CustomFilamentsUpdate:
		h.HandleCustomFilaments(m)
	case Unknown:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, m.Command)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, msg)
	}
	return nil
}

// HandleStudio is the single inbound entry point: decode then dispatch.
func HandleStudio(data []byte, h Handler) error {
	msg, err := Decode(data)
	if err != nil {
		return err
	}
	return Dispatch(msg, h)
}
