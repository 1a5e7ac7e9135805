package domain

// Profile is the account record behind a session: the backend's view of the
// user, fetched fresh rather than read from the persisted session snapshot.
type Profile struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
}

// Address is one saved delivery address from the account's address book.
type Address struct {
	ID           string `json:"id"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	IsDefault    bool   `json:"isDefault"`
}
