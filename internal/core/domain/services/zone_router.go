package services

import (
	"strings"

	"boutique/internal/pkg/errs"
)

// Zone is one named delivery region, its matching keywords, and the chat
// identity of the single courier serving it. CourierID may be empty when no
// courier is configured yet; routing still resolves the zone and the gap is
// surfaced to the admin channel.
type Zone struct {
	Name      string
	Keywords  []string
	CourierID string
}

// ZoneRouter resolves a free-text delivery type to a delivery zone. Matching
// is a case-insensitive substring scan over an ordered zone list; the first
// zone with a matching keyword wins and unrecognized text falls back to the
// configured default zone.
type ZoneRouter struct {
	zones       []Zone
	defaultZone Zone
}

// NewZoneRouter creates a router over the ordered zone list. defaultZone must
// name one of the listed zones.
func NewZoneRouter(zones []Zone, defaultZone string) (*ZoneRouter, error) {
	if len(zones) == 0 {
		return nil, errs.NewValueIsRequiredError("zones")
	}

	for _, z := range zones {
		if z.Name == defaultZone {
			return &ZoneRouter{zones: zones, defaultZone: z}, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("defaultZone", defaultZone)
}

// Resolve returns the zone serving the given delivery type.
func (r *ZoneRouter) Resolve(deliveryType string) Zone {
	text := strings.ToLower(deliveryType)

	for _, zone := range r.zones {
		for _, keyword := range zone.Keywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				return zone
			}
		}
	}
	return r.defaultZone
}

// ZoneByName returns the configured zone with the given name.
func (r *ZoneRouter) ZoneByName(name string) (Zone, error) {
	for _, zone := range r.zones {
		if zone.Name == name {
			return zone, nil
		}
	}
	return Zone{}, errs.NewObjectNotFoundError("zone", name)
}

// Zones returns the configured zones in matching order.
func (r *ZoneRouter) Zones() []Zone {
	zones := make([]Zone, len(r.zones))
	copy(zones, r.zones)
	return zones
}
