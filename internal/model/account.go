package model

import "time"

// Account holds a balance in the smallest unit of its currency.
// Balance is never negative and Version grows by one on every balance change.
type Account struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Currency  Currency  `json:"currency"`
	Balance   int64     `json:"balance"`
	Version   int64     `json:"version"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanMutate reports whether the account still accepts balance changes.
func (a *Account) CanMutate() bool {
	return a != nil && a.Active
}
