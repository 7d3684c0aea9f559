package domain

import "time"

// Submission represents one company's recorded set of completed integrations,
// attributed to a single CSM.
type Submission struct {
	ID           string    `json:"id"`
	CSMName      string    `json:"csm_name"`
	CompanyName  string    `json:"company_name"`
	CreatedAt    time.Time `json:"created_at"`
	Integrations []string  `json:"integrations"`
}

// ServiceCount is one row of the by-service overview: how many submissions
// include a given integration.
type ServiceCount struct {
	Integration string `json:"integration"`
	Count       int    `json:"count"`
}

// CSMCount is one row of the per-CSM leaderboard.
type CSMCount struct {
	CSMName      string `json:"csm_name"`
	Companies    int    `json:"companies"`
	Integrations int    `json:"integrations"`
}
