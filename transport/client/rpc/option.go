package rpc

import "github.com/viant/baseclient/transport"

// Option represents a client option
type Option func(c *Client)

// WithSequencer replaces the default counter based request id generator
func WithSequencer(sequencer transport.Sequencer) Option {
	return func(c *Client) {
		if sequencer != nil {
			c.sequencer = sequencer
		}
	}
}
