// Package versioning provides the version schemes used to validate and order
// version directory labels.
package versioning

import (
	"fmt"
	"sort"
	"sync"

	"github.com/git-pkgs/sbtplugin/internal/core"
)

// Scheme validates and orders version labels.
type Scheme interface {
	// ID returns the scheme identifier, e.g. "maven".
	ID() string

	// IsValid reports whether label parses as a version under this scheme.
	IsValid(label string) bool

	// SortAscending returns the valid labels in ascending order.
	// Invalid labels are dropped.
	SortAscending(labels []string) []string
}

// Default is the scheme used when the caller selects none.
const Default = "maven"

var (
	schemes = make(map[string]Scheme)
	mu      sync.RWMutex
)

// Register adds a scheme under its ID, replacing any previous one.
func Register(s Scheme) {
	mu.Lock()
	defer mu.Unlock()
	schemes[s.ID()] = s
}

// Get returns the scheme registered under id. An empty id selects Default.
func Get(id string) (Scheme, error) {
	if id == "" {
		id = Default
	}
	mu.RLock()
	s, ok := schemes[id]
	mu.RUnlock()
	if !ok {
		return nil, &core.ConfigurationError{
			Input:  id,
			Reason: fmt.Sprintf("supported schemes: %v", Supported()),
			Err:    core.ErrUnknownVersioning,
		}
	}
	return s, nil
}

// Supported returns the registered scheme IDs, sorted.
func Supported() []string {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]string, 0, len(schemes))
	for id := range schemes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Latest returns the greatest valid label, or "" if none is valid.
func Latest(s Scheme, labels []string) string {
	sorted := s.SortAscending(labels)
	if len(sorted) == 0 {
		return ""
	}
	return sorted[len(sorted)-1]
}

func init() {
	Register(looseScheme{})
	Register(mavenScheme{})
	Register(semverScheme{})
}
