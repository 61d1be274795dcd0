package contentstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

var (
	// ErrResourceUnknown indicates a logical resource with no candidate table
	ErrResourceUnknown = errors.New("contentstore: unknown logical resource")
	// ErrEndpointExhausted indicates every candidate endpoint failed. The
	// wrapped error names each attempt so an outage is distinguishable from
	// a renamed resource.
	ErrEndpointExhausted = errors.New("contentstore: all candidate endpoints failed")
)

// resourceEndpoints maps each logical resource to the physical endpoint
// names it has carried across content-store schema versions, in probe
// order. The current name goes first; renames stay until every deployment
// is migrated.
var resourceEndpoints = map[string][]string{
	"products":    {"productos", "libros", "producto-catalogos"},
	"authors":     {"autores", "escritores"},
	"categories":  {"categorias", "generos"},
	"collections": {"colecciones", "serie-coleccions", "colecciones-series"},
	"tags":        {"etiquetas", "tags"},
	"orders":      {"pedidos", "ordenes"},
}

// Candidates returns the probe order for a logical resource
func Candidates(logical string) ([]string, error) {
	candidates, ok := resourceEndpoints[logical]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrResourceUnknown, logical)
	}
	return candidates, nil
}

// Resolver probes candidate endpoints for logical resources and remembers
// the winner for the lifetime of one resolution pass. A Resolver is scoped
// to a single inbound request and must not be shared across goroutines;
// backend schema is assumed stable within a deployment, so a few redundant
// probes per request are cheaper than a shared cache with invalidation.
type Resolver struct {
	client  *Client
	winners map[string]string
}

// NewResolver creates a resolution pass bound to this client
func (c *Client) NewResolver() *Resolver {
	return &Resolver{
		client:  c,
		winners: make(map[string]string),
	}
}

// Resolve returns the physical endpoint for a logical resource, probing the
// candidates in order with a minimal read. On exhaustion the returned error
// aggregates every attempted candidate's failure.
func (r *Resolver) Resolve(ctx context.Context, logical string) (string, error) {
	if winner, ok := r.winners[logical]; ok {
		return winner, nil
	}

	probe := url.Values{}
	probe.Set("pagination[pageSize]", "1")
	if _, err := r.Fetch(ctx, logical, probe); err != nil {
		return "", err
	}
	return r.winners[logical], nil
}

// Fetch resolves the logical resource and performs the GET in one pass:
// the first candidate that answers the actual query wins and is cached for
// this Resolver's lifetime.
func (r *Resolver) Fetch(ctx context.Context, logical string, query url.Values) (json.RawMessage, error) {
	if winner, ok := r.winners[logical]; ok {
		return r.client.Get(ctx, winner, query)
	}

	candidates, err := Candidates(logical)
	if err != nil {
		return nil, err
	}

	attempts := make([]error, 0, len(candidates))
	for _, candidate := range candidates {
		raw, err := r.client.Get(ctx, candidate, query)
		if err != nil {
			attempts = append(attempts, fmt.Errorf("%s: %w", candidate, err))
			continue
		}
		r.winners[logical] = candidate
		return raw, nil
	}

	return nil, fmt.Errorf("%w: %s: %w", ErrEndpointExhausted, logical, errors.Join(attempts...))
}
