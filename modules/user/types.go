package user

// FindByEmailRequest is the request for looking up a credential record.
type FindByEmailRequest struct {
	Email string `json:"email"`
}

// FindByEmailResponse is the response for a credential lookup. The
// password hash only travels between in-process modules; it is never
// part of an HTTP response.
type FindByEmailResponse struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Name         string `json:"name"`
	Found        bool   `json:"found"`
}

// GetUserRequest is the request for getting a user by ID.
type GetUserRequest struct {
	UserID int `json:"user_id"`
}

// GetUserResponse is the response for getting a user by ID.
type GetUserResponse struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Found bool   `json:"found"`
}
