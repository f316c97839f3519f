package domain

// Entity is something a user can subscribe to or share: either a curated
// celestial event or an asteroid from the live NeoWs feed.
type Entity interface {
	primaryID() string
	referenceID() string
	DisplayName() string
}

// CuratedEntity wraps an event from the static catalog
type CuratedEntity struct {
	Event CelestialEvent
}

func (c CuratedEntity) primaryID() string   { return c.Event.ID }
func (c CuratedEntity) referenceID() string { return "" }

// DisplayName returns the event name
func (c CuratedEntity) DisplayName() string { return c.Event.Name }

// TrackedEntity wraps an asteroid from the NeoWs feed
type TrackedEntity struct {
	Object NearEarthObject
}

func (t TrackedEntity) primaryID() string   { return t.Object.ID }
func (t TrackedEntity) referenceID() string { return t.Object.ReferenceID }

// DisplayName returns the asteroid designation
func (t TrackedEntity) DisplayName() string { return t.Object.Name }

// ResolveID returns the identifier used for interest membership and share
// links: the primary id when present, otherwise the reference id.
func ResolveID(e Entity) string {
	if id := e.primaryID(); id != "" {
		return id
	}
	return e.referenceID()
}

// FindEntity looks id up in the curated catalog and then in neos, matching
// either identifier field of an asteroid.
func FindEntity(id string, neos []NearEarthObject) (Entity, bool) {
	if id == "" {
		return nil, false
	}
	for _, ev := range CelestialEvents() {
		if ev.ID == id {
			return CuratedEntity{Event: ev}, true
		}
	}
	for _, neo := range neos {
		if neo.ID == id || neo.ReferenceID == id {
			return TrackedEntity{Object: neo}, true
		}
	}
	return nil, false
}
