package leasing

// ContractEventKind identifies what happened to a contract
type ContractEventKind string

const (
	ContractCreated       ContractEventKind = "created"
	ContractStatusChanged ContractEventKind = "status_changed"
	ContractDeleted       ContractEventKind = "deleted"
)

// ContractEvent describes a contract transition that may move its space
type ContractEvent struct {
	Kind ContractEventKind
	// From is the status before the change; empty for creation
	From ContractStatus
	// To is the status after the change; empty defaults to active on creation
	To ContractStatus
}

// OccupancyTarget maps a contract transition to the status its space should take.
// The second result is false when the transition leaves the space untouched.
// Maintenance is never returned: only operators put a space under maintenance.
// Only a change out of active vacates a space.
func OccupancyTarget(ev ContractEvent) (SpaceStatus, bool) {
	switch ev.Kind {
	case ContractCreated:
		if ev.To == "" || ev.To == ContractStatusActive {
			return SpaceStatusOccupied, true
		}
		return "", false
	case ContractStatusChanged:
		if ev.To == "" || ev.To == ev.From {
			return "", false
		}
		switch ev.To {
		case ContractStatusActive:
			return SpaceStatusOccupied, true
		case ContractStatusExpired, ContractStatusTerminated:
			// only the active contract holds the space; ending an already
			// ended one must not free a space a newer contract occupies
			if ev.From != ContractStatusActive {
				return "", false
			}
			return SpaceStatusVacant, true
		}
		return "", false
	case ContractDeleted:
		return SpaceStatusVacant, true
	}
	return "", false
}
