package model

// PullRequest holds the pull request information needed to validate it
type PullRequest struct {
	Owner   string
	Repo    string
	Number  int
	Title   string
	Author  string
	HeadSHA string
}

// PullRequestFile is one file changed by a pull request
type PullRequestFile struct {
	Filename string
	Status   string
	Patch    string
}
