package model

// NodeRecord is the observed snapshot of one node as reported by scontrol.
// Records are produced only by the control adapter and are never mutated; a
// fresh query supersedes an older record.
type NodeRecord struct {
	Name   string   `json:"name" yaml:"name"`
	State  []string `json:"state" yaml:"state"`
	Reason string   `json:"reason" yaml:"reason"`
}

// HasState reports whether the record carries the given token. Observed state
// is a token set, so a node already in the target state may hold other tokens
// alongside it.
func (r NodeRecord) HasState(token StateToken) bool {
	for _, s := range r.State {
		if s == string(token) {
			return true
		}
	}
	return false
}

// Snapshot maps node names to the records observed in one collection pass.
type Snapshot map[string]NodeRecord

// Clone returns an independent copy so a stored snapshot cannot be changed
// through the original map.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	for name, rec := range s {
		out[name] = rec
	}
	return out
}
