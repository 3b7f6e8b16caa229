// Package courier contains the carrier adapters the shipment orchestrator can
// dispatch to. The set is fixed at start-up.
package courier

import (
	"sort"

	"fulfillment/internal/core/ports"
)

const (
	RealCarrierName = "realCarrier"
	ManualName      = "manual"
)

var _ ports.CourierRegistry = (*Registry)(nil)

type Registry struct {
	adapters map[string]ports.CourierAdapter
}

// NewRegistry indexes adapters by Name. A later adapter with the same name
// replaces an earlier one.
func NewRegistry(adapters ...ports.CourierAdapter) *Registry {
	r := &Registry{adapters: make(map[string]ports.CourierAdapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Name()] = a
	}
	return r
}

func (r *Registry) Get(name string) (ports.CourierAdapter, bool) {
	a, ok := r.adapters[name]
	return a, ok
}

// Names lists the registered carriers in a stable order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
