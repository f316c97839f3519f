package domain

import "time"

// FallbackNotifications returns the bulletins shown when the DONKI feed is
// unreachable or empty. The result always holds two records.
func FallbackNotifications(now time.Time) []Notification {
	return []Notification{
		{
			MessageID:        "fallback-1",
			MessageType:      "Report",
			MessageIssueTime: now.UTC().Format(time.RFC3339),
			MessageBody:      "Standard background solar wind detected. No major flares in the last 6 hours.",
		},
		{
			MessageID:        "fallback-2",
			MessageType:      "Alert",
			MessageIssueTime: now.Add(-24 * time.Hour).UTC().Format(time.RFC3339),
			MessageBody:      "Minor geomagnetic disturbance observed at high latitudes.",
		},
	}
}

// FallbackNearEarthObjects returns the demo asteroid shown when the NeoWs
// feed has nothing for the requested day.
func FallbackNearEarthObjects() []NearEarthObject {
	return []NearEarthObject{
		{
			ID:          "demo-neo-1",
			ReferenceID: "2467317",
			Name:        "467317 (2000 QW7)",
			EstimatedDiameter: EstimatedDiameter{
				Kilometers: DiameterRange{Max: 0.65},
			},
			PotentiallyHazardous: true,
			CloseApproaches: []CloseApproach{
				{
					MissDistance:     MissDistance{Kilometers: "5331000", Lunar: "13.8"},
					RelativeVelocity: RelativeVelocity{KilometersPerHour: "54200"},
				},
			},
		},
	}
}
