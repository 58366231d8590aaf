package models

// Principal is the normalized view of an account, independent of the store
// it was found in. It is built on demand by the identity resolver and is
// never persisted.
type Principal struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	Verified     bool
}

// PrincipalFromIdentity converts a store record into its normalized view.
func PrincipalFromIdentity(id *Identity) *Principal {
	return &Principal{
		ID:           id.ID,
		Name:         id.Name,
		Email:        id.Email,
		Phone:        id.Phone,
		PasswordHash: id.PasswordHash,
		Role:         id.Role,
		Verified:     id.Verified,
	}
}
