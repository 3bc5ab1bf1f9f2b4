package statemachine

import (
	"errors"

	"foodshare-api/models"
)

// Transition defines a valid claim state change and who can perform it
type Transition struct {
	From  models.ClaimStatus
	To    models.ClaimStatus
	Actor string // "restaurant", "admin", "system"
}

// validTransitions is the authoritative claim lifecycle definition. Every
// state other than pending is terminal: a redemption code is consumed exactly
// once, whichever way it leaves pending.
var validTransitions = []Transition{
	// Restaurant scans the QR code at pickup
	{From: models.ClaimPending, To: models.ClaimValidated, Actor: "restaurant"},
	// Restaurant turns a student away (wrong code holder, offer withdrawn)
	{From: models.ClaimPending, To: models.ClaimRejected, Actor: "restaurant"},
	// Housekeeping marks stale reservations
	{From: models.ClaimPending, To: models.ClaimExpired, Actor: "system"},
	// Admin can force any of the above
	{From: models.ClaimPending, To: models.ClaimValidated, Actor: "admin"},
	{From: models.ClaimPending, To: models.ClaimRejected, Actor: "admin"},
	{From: models.ClaimPending, To: models.ClaimExpired, Actor: "admin"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.ClaimStatus
	To    models.ClaimStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.ClaimStatus) []models.ClaimStatus {
	var nexts []models.ClaimStatus
	seen := map[models.ClaimStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// IsTerminal reports whether a claim can never leave the given state
func IsTerminal(status models.ClaimStatus) bool {
	return len(ValidTransitionsFrom(status)) == 0
}

// CanTransition checks if a given actor can move a claim from one state to another
func CanTransition(from, to models.ClaimStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.ClaimStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full claim lifecycle for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
