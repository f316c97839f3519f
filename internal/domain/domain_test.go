package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackNotifications(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	notes := FallbackNotifications(now)

	require.Len(t, notes, 2)
	assert.Equal(t, "Report", notes[0].MessageType)
	assert.Equal(t, "Alert", notes[1].MessageType)
	assert.Equal(t, "2024-01-01T12:00:00Z", notes[0].MessageIssueTime)
	assert.Equal(t, "2023-12-31T12:00:00Z", notes[1].MessageIssueTime)
	for _, n := range notes {
		assert.NotEmpty(t, n.MessageID)
		assert.NotEmpty(t, n.MessageBody)
	}
}

func TestFallbackNearEarthObjects(t *testing.T) {
	neos := FallbackNearEarthObjects()

	require.Len(t, neos, 1)
	neo := neos[0]
	assert.Equal(t, "demo-neo-1", neo.ID)
	assert.Equal(t, "2467317", neo.ReferenceID)
	assert.True(t, neo.PotentiallyHazardous)
	assert.InDelta(t, 0.65, neo.EstimatedDiameter.Kilometers.Max, 1e-9)
	require.Len(t, neo.CloseApproaches, 1)
	assert.Equal(t, "13.8", neo.CloseApproaches[0].MissDistance.Lunar)
}

func TestResolveID(t *testing.T) {
	curated := CuratedEntity{Event: CelestialEvent{ID: "evt-1", Name: "Eclipse"}}
	assert.Equal(t, "evt-1", ResolveID(curated))

	withBoth := TrackedEntity{Object: NearEarthObject{ID: "54321", ReferenceID: "2054321"}}
	assert.Equal(t, "54321", ResolveID(withBoth))

	refOnly := TrackedEntity{Object: NearEarthObject{ReferenceID: "2467317", Name: "467317 (2000 QW7)"}}
	assert.Equal(t, "2467317", ResolveID(refOnly))
	assert.Equal(t, "467317 (2000 QW7)", refOnly.DisplayName())
}

func TestFindEntity(t *testing.T) {
	neos := []NearEarthObject{{ReferenceID: "2099942", Name: "99942 Apophis"}}

	e, ok := FindEntity("evt-geminids-2026", neos)
	require.True(t, ok)
	assert.IsType(t, CuratedEntity{}, e)

	e, ok = FindEntity("2099942", neos)
	require.True(t, ok)
	assert.Equal(t, "99942 Apophis", e.DisplayName())
	assert.Equal(t, "2099942", ResolveID(e))

	_, ok = FindEntity("missing", neos)
	assert.False(t, ok)
	_, ok = FindEntity("", neos)
	assert.False(t, ok)
}

func TestFilterEvents(t *testing.T) {
	all := FilterEvents("All")
	assert.Len(t, all, len(CelestialEvents()))
	assert.Equal(t, all, FilterEvents(""))

	for _, ev := range FilterEvents("Upcoming") {
		assert.Equal(t, StatusUpcoming, ev.Status)
	}
	assert.Empty(t, FilterEvents("Cancelled"))
}

func TestCatalogCopiesAreIndependent(t *testing.T) {
	events := CelestialEvents()
	events[0].Name = "mutated"
	assert.NotEqual(t, "mutated", CelestialEvents()[0].Name)

	m, ok := FindMission("apollo-11")
	require.True(t, ok)
	assert.Equal(t, 1969, m.Year)
	_, ok = FindMission("nope")
	assert.False(t, ok)
}

func TestRecentBodies(t *testing.T) {
	notes := []Notification{
		{MessageBody: "a"}, {MessageBody: "b"}, {MessageBody: "c"}, {MessageBody: "d"},
	}
	assert.Equal(t, "a b c", RecentBodies(notes, 3))
	assert.Equal(t, "a", RecentBodies(notes[:1], 3))
	assert.Equal(t, "", RecentBodies(nil, 3))
}

func TestAtmosphereClearSkies(t *testing.T) {
	assert.True(t, Atmosphere{CloudCover: 12}.ClearSkies())
	assert.False(t, Atmosphere{CloudCover: 30}.ClearSkies())
}
