package services

import "github.com/im7mortal/kmutex"

// EmailLocks serializes mutations that belong to the same user.
type EmailLocks struct {
	keyed *kmutex.Kmutex
}

func NewEmailLocks() *EmailLocks {
	return &EmailLocks{keyed: kmutex.New()}
}

// Lock blocks until email is free and returns the matching unlock.
func (locks *EmailLocks) Lock(email string) func() {
	locks.keyed.Lock(email)
	return func() { locks.keyed.Unlock(email) }
}
