// Package campaign holds the per-campaign script bundles: a persona
// instruction block for the remote voice model, a session script with
// bracket placeholders, and the structured call flow consumed by the
// state machine. Campaign text is configuration, not logic.
package campaign

import (
	"fmt"
	"strings"

	"github.com/demandify-media/caller-voice-service/internal/callflow"
)

// Campaign bundles everything needed to run one outbound campaign.
type Campaign struct {
	Key         string
	DisplayName string

	// AgentInstruction is the persona block sent to the voice model at
	// session start. It contains no placeholders.
	AgentInstruction string

	// SessionScript is the scripted flow with literal bracket placeholders,
	// rendered per lead before injection.
	SessionScript string

	// Flow is the structured script driving the call-flow state machine.
	Flow callflow.Script
}

// Registry is an ordered, read-only set of campaigns.
type Registry struct {
	keys      []string
	campaigns map[string]Campaign
}

// NewRegistry builds the registry of shipped campaigns.
func NewRegistry() *Registry {
	r := &Registry{campaigns: make(map[string]Campaign)}
	for _, c := range []Campaign{splashBI(), konfHub(), zoomPhone()} {
		r.keys = append(r.keys, c.Key)
		r.campaigns[c.Key] = c
	}
	return r
}

// Get returns the campaign for a key.
func (r *Registry) Get(key string) (Campaign, error) {
	c, ok := r.campaigns[key]
	if !ok {
		return Campaign{}, fmt.Errorf("unknown campaign %q", key)
	}
	return c, nil
}

// Has reports whether a key is registered.
func (r *Registry) Has(key string) bool {
	_, ok := r.campaigns[key]
	return ok
}

// Keys returns campaign keys in registration order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Default returns the first registered campaign.
func (r *Registry) Default() Campaign {
	return r.campaigns[r.keys[0]]
}

// DisplayLabel cleans a campaign name for dropdowns, stripping any
// parenthetical qualifier.
func DisplayLabel(name string) string {
	if i := strings.Index(name, " ("); i > 0 {
		return name[:i]
	}
	return name
}
