package persistence

import "github.com/google/uuid"

func newTestUserID() uuid.UUID {
	return uuid.New()
}
