package bridge

import (
	"encoding/json"
	"log/slog"
	"time"
)

// Poster delivers an encoded command to the host.
type Poster interface {
	PostMessage(payload []byte) error
}

// PosterFunc adapts a function to Poster.
type PosterFunc func(payload []byte) error

// PostMessage calls f.
func (f PosterFunc) PostMessage(payload []byte) error { return f(payload) }

// Channel sends commands to the host. Sends are fire-and-forget: without a
// host, or when the host rejects a message, the command is dropped and
// logged.
type Channel struct {
	poster Poster
	now    func() time.Time
	log    *slog.Logger
}

// NewChannel returns a Channel posting to p. p may be nil.
func NewChannel(p Poster, log *slog.Logger) *Channel {
	if log == nil {
		log = slog.Default()
	}
	return &Channel{poster: p, now: time.Now, log: log}
}

// SetClock replaces the time source used for sequence ids.
func (c *Channel) SetClock(now func() time.Time) {
	c.now = now
}

// Attached reports whether a host is connected.
func (c *Channel) Attached() bool {
	return c != nil && c.poster != nil
}

// Send stamps cmd with the current unix time and posts it. It reports
// whether the command reached the host.
func (c *Channel) Send(cmd Command) bool {
	if !c.Attached() {
		if c != nil {
			c.log.Debug("no host attached, dropping command", "command", cmd.Command)
		}
		return false
	}
	cmd.SequenceID = c.now().Unix()
	payload, err := json.Marshal(cmd)
	if err != nil {
		c.log.Error("encoding command", "command", cmd.Command, "err", err)
		return false
	}
	if err := c.poster.PostMessage(payload); err != nil {
		c.log.Warn("host rejected command", "command", cmd.Command, "err", err)
		return false
	}
	c.log.Debug("sent command", "command", cmd.Command, "sequence_id", cmd.SequenceID)
	return true
}
