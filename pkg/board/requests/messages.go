package requests

type PostMessage struct {
	Message string `json:"message"`
	Name    string `json:"name"`
	Mood    string `json:"mood"`
}

// Pin uses a pointer so that a missing isPinned is told apart from false.
type Pin struct {
	IsPinned *bool `json:"isPinned"`
}

type React struct {
	Type   string `json:"type"`
	Remove bool   `json:"remove"`
}

type Comment struct {
	Comment   string `json:"comment"`
	Anonymous bool   `json:"anonymous"`
}
