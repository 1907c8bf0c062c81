package domain

import "strings"

// PlaceStatus is the moderation state of a Place.
type PlaceStatus string

const (
	StatusProposed PlaceStatus = "PROPOSED"
	StatusApproved PlaceStatus = "APPROVED"
	StatusDeclined PlaceStatus = "DECLINED"
	StatusDeleted  PlaceStatus = "DELETED"
)

// PlaceStatuses returns the legal status enumeration in a stable order.
func PlaceStatuses() []PlaceStatus {
	return []PlaceStatus{StatusProposed, StatusApproved, StatusDeclined, StatusDeleted}
}

// ParsePlaceStatus matches a string against the enumeration,
// case-insensitively.
func ParsePlaceStatus(s string) (PlaceStatus, bool) {
	switch PlaceStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusProposed:
		return StatusProposed, true
	case StatusApproved:
		return StatusApproved, true
	case StatusDeclined:
		return StatusDeclined, true
	case StatusDeleted:
		return StatusDeleted, true
	default:
		return "", false
	}
}

func (s PlaceStatus) Valid() bool {
	_, ok := ParsePlaceStatus(string(s))
	return ok
}

// TransitionResult classifies a requested status transition.
type TransitionResult int

const (
	// TransitionAllowed - the transition is legal and should be applied.
	TransitionAllowed TransitionResult = iota
	// TransitionNoop - the place is already in the target state.
	// Reported as success with no write.
	TransitionNoop
	// TransitionIllegal - the state machine rejects the transition.
	TransitionIllegal
)

// CheckTransition implements the moderation state machine.
// DELETED is absorbing: no transition leads out of it.
func CheckTransition(from, to PlaceStatus) TransitionResult {
	if from == to {
		return TransitionNoop
	}
	if from == StatusDeleted {
		return TransitionIllegal
	}
	if !from.Valid() || !to.Valid() {
		return TransitionIllegal
	}
	return TransitionAllowed
}
