package responses

// Envelope is the body of every non-list response.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type Created struct {
	Success bool `json:"success"`
	ID      uint `json:"id"`
}

type AdminStatus struct {
	Authenticated    bool   `json:"authenticated"`
	UserID           *uint  `json:"userId,omitempty"`
	Username         string `json:"username,omitempty"`
	IsOwner          *bool  `json:"isOwner,omitempty"`
	IsSuperModerator *bool  `json:"isSuperModerator,omitempty"`
}

type UserStatus struct {
	Authenticated bool   `json:"authenticated"`
	UserID        *uint  `json:"userId,omitempty"`
	Username      string `json:"username,omitempty"`
	Gmail         string `json:"gmail,omitempty"`
}

type Poster struct {
	Success bool   `json:"success"`
	Name    string `json:"name,omitempty"`
	Gmail   string `json:"gmail,omitempty"`
	Display string `json:"display"`
}

type Reactions struct {
	Success   bool             `json:"success"`
	Counts    map[string]int64 `json:"counts"`
	Reactions []string         `json:"reactions"`
}

type Health struct {
	Status string `json:"status"`
}

// UserLogin and AdminLogin answer a successful sign-in with the session's
// status inside the usual envelope.
type UserLogin struct {
	Success bool `json:"success"`
	UserStatus
}

type AdminLogin struct {
	Success bool `json:"success"`
	AdminStatus
}
