package vault

import "github.com/iov-one/multivault"

// Participant is a member of a vault. A removed participant keeps its
// position and is only marked as inactive.
type Participant struct {
	Address weave.Address `json:"address"`
	Active  bool          `json:"active"`
}

// find returns the position of the address, or -1.
func (v *Vault) find(addr weave.Address) int {
	for i, p := range v.Participants {
		if p.Address.Equals(addr) {
			return i
		}
	}
	return -1
}

// IsActive returns true if the address is an active participant.
func (v *Vault) IsActive(addr weave.Address) bool {
	i := v.find(addr)
	return i >= 0 && v.Participants[i].Active
}

// ActiveCount returns the number of active participants.
func (v *Vault) ActiveCount() uint64 {
	var n uint64
	for _, p := range v.Participants {
		if p.Active {
			n++
		}
	}
	return n
}

// ActiveParticipants returns the addresses of all active participants, in
// the order they joined.
func (v *Vault) ActiveParticipants() []weave.Address {
	out := make([]weave.Address, 0, len(v.Participants))
	for _, p := range v.Participants {
		if p.Active {
			out = append(out, p.Address)
		}
	}
	return out
}

// activate reactivates a removed participant or appends a new one. It is
// a no-op for an active participant.
func (v *Vault) activate(addr weave.Address) {
	if i := v.find(addr); i >= 0 {
		v.Participants[i].Active = true
		return
	}
	v.Participants = append(v.Participants, Participant{Address: addr, Active: true})
}

// deactivate marks the participant as removed. Unknown and inactive
// addresses are skipped.
func (v *Vault) deactivate(addr weave.Address) {
	if i := v.find(addr); i >= 0 {
		v.Participants[i].Active = false
	}
}
