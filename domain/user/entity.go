package user

// User represents a login identity. The credential set is fixed at
// process start; there are no create/update/delete operations for it.
type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
}

// Identity is the authenticated identity decoded from a verified
// token. It exists only for the duration of one request.
type Identity struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
