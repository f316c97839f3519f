package domain

// EventStatus is the lifecycle state of a curated celestial event
type EventStatus string

const (
	StatusUpcoming EventStatus = "Upcoming"
	StatusPast     EventStatus = "Past"
	StatusOngoing  EventStatus = "Ongoing"
)

// CelestialEvent is a curated sky event
type CelestialEvent struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Date        string      `json:"date"`
	Status      EventStatus `json:"status"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Visibility  string      `json:"visibility"`
}

// Mission is one entry of the human spaceflight timeline
type Mission struct {
	ID          string `json:"id"`
	MissionName string `json:"mission_name"`
	Year        int    `json:"year"`
	Country     string `json:"country"`
	Status      string `json:"status"`
	Objective   string `json:"objective"`
	Photo       string `json:"photo"`
}

var celestialEvents = []CelestialEvent{
	{
		ID:          "evt-perseids-2026",
		Name:        "Perseid Meteor Shower",
		Type:        "Meteor Shower",
		Date:        "2026-08-12",
		Status:      StatusPast,
		Location:    "Northern Hemisphere",
		Description: "Debris from comet Swift-Tuttle produces up to 100 meteors per hour at peak.",
		Image:       "https://images.unsplash.com/photo-1532968961962-8a0cb3a2d4f5?auto=format&fit=crop&q=80&w=1200",
		Visibility:  "Naked eye",
	},
	{
		ID:          "evt-eclipse-2026-08",
		Name:        "Total Solar Eclipse",
		Type:        "Eclipse",
		Date:        "2026-08-12",
		Status:      StatusPast,
		Location:    "Greenland, Iceland, Spain",
		Description: "The Moon fully covers the Sun along a narrow path crossing the North Atlantic and the Iberian Peninsula.",
		Image:       "https://images.unsplash.com/photo-1503803548695-c2a7b4a5b875?auto=format&fit=crop&q=80&w=1200",
		Visibility:  "Eye protection required",
	},
	{
		ID:          "evt-orionids-2026",
		Name:        "Orionid Meteor Shower",
		Type:        "Meteor Shower",
		Date:        "2026-10-21",
		Status:      StatusOngoing,
		Location:    "Worldwide",
		Description: "Fast meteors from Halley's Comet radiating from the constellation Orion.",
		Image:       "https://images.unsplash.com/photo-1475274047050-1d0c0975c63e?auto=format&fit=crop&q=80&w=1200",
		Visibility:  "Naked eye",
	},
	{
		ID:          "evt-geminids-2026",
		Name:        "Geminid Meteor Shower",
		Type:        "Meteor Shower",
		Date:        "2026-12-14",
		Status:      StatusUpcoming,
		Location:    "Worldwide",
		Description: "The richest annual shower, producing multicolored meteors from asteroid 3200 Phaethon.",
		Image:       "https://images.unsplash.com/photo-1444703686981-a3abbc4d4fe3?auto=format&fit=crop&q=80&w=1200",
		Visibility:  "Naked eye",
	},
	{
		ID:          "evt-lunar-eclipse-2027-02",
		Name:        "Penumbral Lunar Eclipse",
		Type:        "Eclipse",
		Date:        "2027-02-20",
		Status:      StatusUpcoming,
		Location:    "Americas, Europe, Africa",
		Description: "The Moon passes through Earth's outer shadow and dims slightly.",
		Image:       "https://images.unsplash.com/photo-1522030299830-16b8d3d049fe?auto=format&fit=crop&q=80&w=1200",
		Visibility:  "Naked eye",
	},
	{
		ID:          "evt-jupiter-opposition-2027",
		Name:        "Jupiter at Opposition",
		Type:        "Planetary",
		Date:        "2027-02-11",
		Status:      StatusUpcoming,
		Location:    "Worldwide",
		Description: "Jupiter is fully lit by the Sun and visible all night, ideal for observing its moons.",
		Image:       "https://images.unsplash.com/photo-1614732414444-096e5f1122d5?auto=format&fit=crop&q=80&w=1200",
		Visibility:  "Binoculars",
	},
}

var missions = []Mission{
	{ID: "vostok-1", MissionName: "Vostok 1", Year: 1961, Country: "USSR", Status: "Success", Objective: "First human orbital flight.", Photo: "https://images.unsplash.com/photo-1457364559154-aa2644600ebb?auto=format&fit=crop&q=80&w=800"},
	{ID: "apollo-11", MissionName: "Apollo 11", Year: 1969, Country: "USA", Status: "Success", Objective: "First crewed lunar landing and return.", Photo: "https://images.unsplash.com/photo-1446776811953-b23d57bd21aa?auto=format&fit=crop&q=80&w=800"},
	{ID: "apollo-13", MissionName: "Apollo 13", Year: 1970, Country: "USA", Status: "Partial", Objective: "Lunar landing, aborted after an oxygen tank failure; crew returned safely.", Photo: "https://images.unsplash.com/photo-1454789548928-9efd52dc4031?auto=format&fit=crop&q=80&w=800"},
	{ID: "voyager-1", MissionName: "Voyager 1", Year: 1977, Country: "USA", Status: "Success", Objective: "Flybys of Jupiter and Saturn, then interstellar space.", Photo: "https://images.unsplash.com/photo-1614728894747-a83421e2b9c9?auto=format&fit=crop&q=80&w=800"},
	{ID: "hubble", MissionName: "Hubble Space Telescope", Year: 1990, Country: "USA / ESA", Status: "Success", Objective: "Long-lived optical observatory in low Earth orbit.", Photo: "https://images.unsplash.com/photo-1462331940025-496dfbfc7564?auto=format&fit=crop&q=80&w=800"},
	{ID: "mangalyaan", MissionName: "Mars Orbiter Mission", Year: 2013, Country: "India", Status: "Success", Objective: "Mars orbit insertion on the first attempt.", Photo: "https://images.unsplash.com/photo-1614728263952-84ea256f9679?auto=format&fit=crop&q=80&w=800"},
	{ID: "jwst", MissionName: "James Webb Space Telescope", Year: 2021, Country: "USA / ESA / CSA", Status: "Success", Objective: "Infrared observatory at Sun-Earth L2.", Photo: "https://images.unsplash.com/photo-1543722530-d2c3201371e7?auto=format&fit=crop&q=80&w=800"},
	{ID: "chandrayaan-3", MissionName: "Chandrayaan-3", Year: 2023, Country: "India", Status: "Success", Objective: "Soft landing near the lunar south pole.", Photo: "https://images.unsplash.com/photo-1532693322450-2cb5c511067d?auto=format&fit=crop&q=80&w=800"},
}

// CelestialEvents returns a copy of the curated event catalog
func CelestialEvents() []CelestialEvent {
	out := make([]CelestialEvent, len(celestialEvents))
	copy(out, celestialEvents)
	return out
}

// FilterEvents returns the curated events with the given status. "All" or
// an empty status returns every event.
func FilterEvents(status string) []CelestialEvent {
	events := CelestialEvents()
	if status == "" || status == "All" {
		return events
	}
	filtered := make([]CelestialEvent, 0, len(events))
	for _, ev := range events {
		if string(ev.Status) == status {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}

// Missions returns a copy of the mission timeline
func Missions() []Mission {
	out := make([]Mission, len(missions))
	copy(out, missions)
	return out
}

// FindMission looks a mission up by id
func FindMission(id string) (Mission, bool) {
	for _, m := range missions {
		if m.ID == id {
			return m, true
		}
	}
	return Mission{}, false
}
