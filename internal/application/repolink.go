package application

import (
	"net/url"
	"strings"
)

// RepoShortName derives the repository name from a repository link by taking
// the final path segment and trimming a trailing ".git". The function is
// total: an empty or malformed link yields "", never an error, so a bad link
// simply skips contributor import rather than failing project creation.
//
//	https://github.com/org/repo     -> repo
//	https://github.com/org/repo.git -> repo
//	git@nonsense                    -> ""
func RepoShortName(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}

	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ""
	}

	p := strings.Trim(u.Path, "/")
	if p == "" {
		return ""
	}

	segments := strings.Split(p, "/")
	name := segments[len(segments)-1]
	name = strings.TrimSuffix(name, ".git")

	return name
}
