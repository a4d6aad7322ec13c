// Package domain contains the core data structures and domain logic for the application.
package domain

// Repository is the subset of a GitHub repository the badge cares about.
// Counts absent from the API response are zero.
type Repository struct {
	Name    string `json:"name"`
	Private bool   `json:"private"`
	Stars   int    `json:"stars"`
	Forks   int    `json:"forks"`
}

// Profile holds the account profile fields used by the badge.
type Profile struct {
	Login     string `json:"login"`
	Followers int    `json:"followers"`
}

// Summary is the aggregated record rendered into the badge.
// It is the core domain entity of this application.
type Summary struct {
	Account      string  `json:"account"`
	TotalRepos   int     `json:"total_repos"`
	PrivateCount int     `json:"private_count"`
	Stars        int     `json:"stars"`
	Forks        int     `json:"forks"`
	Followers    int     `json:"followers"`
	StarMean     float64 `json:"star_mean"`
	StarMedian   float64 `json:"star_median"`
	MostStarred  string  `json:"most_starred,omitempty"`
}
