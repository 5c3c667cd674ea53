package wgctl

// MockRunner is a test helper implementing CommandRunner.
type MockRunner struct {
	OutputFunc          func(name string, args ...string) ([]byte, error)
	OutputWithInputFunc func(input string, name string, args ...string) ([]byte, error)

	// Calls records every invocation as the command followed by its args.
	Calls [][]string
}

func (m *MockRunner) Output(name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, append([]string{name}, args...))
	if m.OutputFunc != nil {
		return m.OutputFunc(name, args...)
	}
	return nil, nil
}

func (m *MockRunner) OutputWithInput(input string, name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, append([]string{name}, args...))
	if m.OutputWithInputFunc != nil {
		return m.OutputWithInputFunc(input, name, args...)
	}
	return nil, nil
}
