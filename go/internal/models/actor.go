package models

import "github.com/google/uuid"

// Actor identifies who is performing an operation. System is set only by
// in-process automation (the auto-pick orchestrator), which acts with
// commissioner-equivalent privilege through the same code paths as users.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
	System  bool
}

// SystemActor is the identity automation uses when acting on a draft.
func SystemActor() Actor {
	return Actor{System: true}
}
