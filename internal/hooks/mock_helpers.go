package hooks

import "github.com/stretchr/testify/mock"

// MockGitProbe is a mock implementation of GitProbe for testing.
type MockGitProbe struct {
	mock.Mock
}

// IsInsideWorkTree is a mock implementation of GitProbe.IsInsideWorkTree.
func (m *MockGitProbe) IsInsideWorkTree(cwd string) (bool, bool) {
	args := m.Called(cwd)
	return args.Bool(0), args.Bool(1)
}

// IsHeadDetached is a mock implementation of GitProbe.IsHeadDetached.
func (m *MockGitProbe) IsHeadDetached(cwd string) (bool, bool) {
	args := m.Called(cwd)
	return args.Bool(0), args.Bool(1)
}

// ResolveRef is a mock implementation of GitProbe.ResolveRef.
func (m *MockGitProbe) ResolveRef(cwd string, ref string) (string, bool) {
	args := m.Called(cwd, ref)
	return args.String(0), args.Bool(1)
}
