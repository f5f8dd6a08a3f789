package git

import "context"

// MockCommitSource is a test double for CommitSource.
// It allows tests to provide predefined commits without needing a real Git repository.
type MockCommitSource struct {
	Repository bool
	Commits    []CommitRecord
	Error      error

	// FetchCalls counts FetchCommits invocations; LastCount holds the last requested n.
	FetchCalls int
	LastCount  int
}

// NewMockCommitSource creates a MockCommitSource that reports a repository.
func NewMockCommitSource(commits []CommitRecord, err error) *MockCommitSource {
	return &MockCommitSource{
		Repository: true,
		Commits:    commits,
		Error:      err,
	}
}

// IsRepository returns the predefined probe result.
func (m *MockCommitSource) IsRepository(_ context.Context) bool {
	return m.Repository
}

// FetchCommits returns the predefined commits or error.
func (m *MockCommitSource) FetchCommits(_ context.Context, n int) ([]CommitRecord, error) {
	m.FetchCalls++
	m.LastCount = n
	if m.Error != nil {
		return nil, m.Error
	}
	if len(m.Commits) == 0 {
		return []CommitRecord{NoRecentCommits}, nil
	}
	if n < len(m.Commits) {
		return m.Commits[:n], nil
	}
	return m.Commits, nil
}

// Compile-time interface conformance check.
var _ CommitSource = (*MockCommitSource)(nil)
