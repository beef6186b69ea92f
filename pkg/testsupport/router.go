package testsupport

import "sync"

// RecordingRouter captures Navigate calls.
type RecordingRouter struct {
	mu    sync.Mutex
	paths []string
}

// Navigate records path.
func (r *RecordingRouter) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

// Paths returns every navigated path in call order.
func (r *RecordingRouter) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}
