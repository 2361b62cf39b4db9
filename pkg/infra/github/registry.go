package github

import (
	"sync"

	"github.com/aoi-dev/shiprel/pkg/domain/interfaces"
)

// Registry caches one authenticated client handle per (host, credential)
// pair for the lifetime of the process. Constructing a handle performs
// endpoint and auth transport setup, so identical coordinates must reuse the
// same handle. Entries are never replaced once stored and there is no
// eviction.
type Registry struct {
	mu      sync.Mutex
	clients map[string]interfaces.ReleaseClient

	// newClient is swappable for tests
	newClient func(host string, cred Credential) (interfaces.ReleaseClient, error)
}

// NewRegistry creates an empty client registry
func NewRegistry() *Registry {
	return &Registry{
		clients:   map[string]interfaces.ReleaseClient{},
		newClient: NewClient,
	}
}

// Get returns the cached client for (host, cred), creating it on first use
func (r *Registry) Get(host string, cred Credential) (interfaces.ReleaseClient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := host + "\x00" + cred.fingerprint()
	if c, ok := r.clients[key]; ok {
		return c, nil
	}

	c, err := r.newClient(host, cred)
	if err != nil {
		return nil, err
	}
	r.clients[key] = c
	return c, nil
}
