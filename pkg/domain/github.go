package domain

// GitHubStatus is the wallet's GitHub linkage as reported by the backend.
type GitHubStatus struct {
	Connected bool   `json:"connected"`
	Username  string `json:"githubUsername,omitempty"`
	AvatarURL string `json:"githubAvatarUrl,omitempty"`
}

// CheckInResult is the backend's verdict for one challenge on the current day.
type CheckInResult struct {
	Success        bool   `json:"success"`
	ClockedIn      bool   `json:"clockedIn"`
	TxHash         string `json:"txHash,omitempty"`
	Message        string `json:"message,omitempty"`
	GitHubUsername string `json:"githubUsername,omitempty"`
}
