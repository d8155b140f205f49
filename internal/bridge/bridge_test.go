package bridge

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ruminaider/slicer-guide/internal/result"
	"github.com/ruminaider/slicer-guide/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPoster struct {
	sent [][]byte
	err  error
}

func (r *recordingPoster) PostMessage(p []byte) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, p)
	return nil
}

func fixedClock() time.Time { return time.Unix(1700000000, 0) }

func TestChannel_Send(t *testing.T) {
	rec := &recordingPoster{}
	ch := NewChannel(rec, nil)
	ch.SetClock(fixedClock)

	assert.True(t, ch.Attached())
	assert.True(t, ch.Send(SaveRegion("Asia-Pacific")))

	require.Len(t, rec.sent, 1)
	assert.JSONEq(t, `{"sequence_id":1700000000,"command":"save_region","region":"Asia-Pacific"}`, string(rec.sent[0]))
}

func TestChannel_NoHostDrops(t *testing.T) {
	ch := NewChannel(nil, nil)
	assert.False(t, ch.Attached())
	assert.False(t, ch.Send(RequestProfile()))

	var nilCh *Channel
	assert.False(t, nilCh.Send(RequestProfile()))
}

func TestChannel_HostErrorDrops(t *testing.T) {
	ch := NewChannel(&recordingPoster{err: errors.New("closed")}, nil)
	assert.False(t, ch.Send(Finish()))
}

func TestPosterFunc(t *testing.T) {
	var got []byte
	ch := NewChannel(PosterFunc(func(p []byte) error { got = p; return nil }), nil)
	ch.SetClock(fixedClock)
	ch.Send(Cancel())
	assert.JSONEq(t, `{"sequence_id":1700000000,"command":"user_guide_cancel"}`, string(got))
}

func TestCommandShapes(t *testing.T) {
	m, err := result.SerializeMachines(selection.New().WithNozzle("BBL", "X1C", "0.4", true))
	require.NoError(t, err)

	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"request profile", RequestProfile(), `{"sequence_id":0,"command":"request_userguide_profile"}`},
		{"save models", SaveModels(m), `{"sequence_id":0,"command":"save_userguide_models","data":{"X1C":{"vendor":"BBL","model":"X1C","nozzle_diameter":"0.4"}}}`},
		{"save filaments", SaveFilaments([]string{"Generic PLA"}), `{"sequence_id":0,"command":"save_userguide_filaments","data":{"filament":["Generic PLA"]}}`},
		{"save filaments nil", SaveFilaments(nil), `{"sequence_id":0,"command":"save_userguide_filaments","data":{"filament":[]}}`},
		{"finish", Finish(), `{"sequence_id":0,"command":"user_guide_finish","data":{"action":"finish"}}`},
		{"plugin yes", NetworkPluginInstall(true), `{"sequence_id":0,"command":"network_plugin_install","data":{"action":"yes"}}`},
		{"privacy refuse", PrivateChoice(false), `{"sequence_id":0,"command":"user_private_choice","data":{"action":"refuse"}}`},
		{"stealth no", StealthMode(false), `{"sequence_id":0,"command":"save_stealth_mode","data":{"action":"no"}}`},
		{"clause agree", UserClause(true), `{"sequence_id":0,"command":"user_clause","data":{"action":"agree"}}`},
		{"modify", ModifyCustomFilament("GFL99"), `{"sequence_id":0,"command":"modify_custom_filament","id":"GFL99"}`},
		{"close", ClosePage(), `{"sequence_id":0,"command":"close_page"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.cmd)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

type recordingHandler struct {
	profiles []ProfileResponse
	customs  []CustomFilamentsUpdate
}

func (r *recordingHandler) HandleProfile(m ProfileResponse)               { r.profiles = append(r.profiles, m) }
func (r *recordingHandler) HandleCustomFilaments(m CustomFilamentsUpdate) { r.customs = append(r.customs, m) }

func TestHandleStudio_Profile(t *testing.T) {
	h := &recordingHandler{}
	err := HandleStudio([]byte(`{
	  "command": "response_userguide_profile",
	  "sequence_id": "10001",
	  "response": {"model": [{"model": "X1C", "vendor": "BBL", "nozzle_diameter": "0.4", "nozzle_selected": "0.4", "materials": ""}], "filament": {}}
	}`), h)
	require.NoError(t, err)
	require.Len(t, h.profiles, 1)
	assert.True(t, h.profiles[0].Profile.HasModels)
	assert.Equal(t, "X1C", h.profiles[0].Profile.Machines[0].Model)
}

func TestHandleStudio_ProfileWithoutModels(t *testing.T) {
	h := &recordingHandler{}
	require.NoError(t, HandleStudio([]byte(`{"command":"response_userguide_profile","response":{}}`), h))
	require.Len(t, h.profiles, 1)
	assert.False(t, h.profiles[0].Profile.HasModels)
}

func TestHandleStudio_CustomFilaments(t *testing.T) {
	h := &recordingHandler{}
	err := HandleStudio([]byte(`{"command":"update_custom_filaments","sequence_id":"2000","data":[{"name":"My PLA","id":"P1234"}]}`), h)
	require.NoError(t, err)
	require.Len(t, h.customs, 1)
	assert.Equal(t, []CustomFilament{{Name: "My PLA", ID: "P1234"}}, h.customs[0].Filaments)
}

func TestHandleStudio_Unknown(t *testing.T) {
	h := &recordingHandler{}
	err := HandleStudio([]byte(`{"command":"something_else"}`), h)
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Empty(t, h.profiles)
}

func TestHandleStudio_BadJSON(t *testing.T) {
	err := HandleStudio([]byte(`{`), &recordingHandler{})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownCommand)

	err = HandleStudio([]byte(`{"command":"response_userguide_profile","response":{"model":"x"}}`), &recordingHandler{})
	assert.Error(t, err)
}

func TestDecode_Variants(t *testing.T) {
	msg, err := Decode([]byte(`{"command":"update_custom_filaments"}`))
	require.NoError(t, err)
	assert.Equal(t, CmdUpdateCustomFilaments, msg.Name())

	msg, err = Decode([]byte(`{"command":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, "x", msg.Name())
}
