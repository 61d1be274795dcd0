package fulfillment

import "strings"

// Status translation between the three systems' vocabularies. Two
// independent tables: carrier<->order-system is not the same mapping as
// order-system<->dashboard display. Lookups trim whitespace and ignore
// case; unmapped values pass through unchanged so a new upstream status
// never breaks the pipeline, it only surfaces as an unrecognized value
// downstream.

// StatusPair is one external->internal translation rule.
type StatusPair struct {
	External string
	Internal string
}

// StatusDictionary is a fixed bidirectional status mapping.
type StatusDictionary struct {
	toInternal map[string]string
	toExternal map[string]string
}

// NewStatusDictionary builds a dictionary from ordered external->internal
// pairs. When several externals map to one internal, the reverse lookup
// keeps the first pair declared.
func NewStatusDictionary(pairs []StatusPair) *StatusDictionary {
	d := &StatusDictionary{
		toInternal: make(map[string]string, len(pairs)),
		toExternal: make(map[string]string, len(pairs)),
	}
	for _, p := range pairs {
		d.toInternal[normalizeStatus(p.External)] = p.Internal
		if _, ok := d.toExternal[normalizeStatus(p.Internal)]; !ok {
			d.toExternal[normalizeStatus(p.Internal)] = p.External
		}
	}
	return d
}

// ToInternal translates an external status; pass-through when unmapped.
func (d *StatusDictionary) ToInternal(external string) string {
	if internal, ok := d.toInternal[normalizeStatus(external)]; ok {
		return internal
	}
	return strings.TrimSpace(external)
}

// ToExternal translates an internal status; pass-through when unmapped.
func (d *StatusDictionary) ToExternal(internal string) string {
	if external, ok := d.toExternal[normalizeStatus(internal)]; ok {
		return external
	}
	return strings.TrimSpace(internal)
}

func normalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CarrierStatuses maps carrier shipment statuses to order-system statuses.
var CarrierStatuses = NewStatusDictionary([]StatusPair{
	{External: "pending", Internal: "pending"},
	{External: "in_transit", Internal: "processing"},
	{External: "picked_up", Internal: "processing"},
	{External: "delivered", Internal: "completed"},
	{External: "returned", Internal: "refunded"},
	{External: "failed", Internal: "failed"},
	{External: "cancelled", Internal: "cancelled"},
})

// DisplayStatuses maps order-system statuses to the labels the dashboard
// renders.
var DisplayStatuses = NewStatusDictionary([]StatusPair{
	{External: "pending", Internal: "Pendiente de pago"},
	{External: "processing", Internal: "En preparación"},
	{External: "on-hold", Internal: "En espera"},
	{External: "completed", Internal: "Completado"},
	{External: "cancelled", Internal: "Cancelado"},
	{External: "refunded", Internal: "Reembolsado"},
	{External: "failed", Internal: "Fallido"},
})
