package model

// Contributor is a GitHub account discovered while importing the contributor
// list of a project's linked repository. Contributors are never created
// directly by a caller, only as a side effect of a successful import.
type Contributor struct {
	ID         string
	Username   string
	AvatarURL  string
	ProfileURL string
}
