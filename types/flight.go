package types

import "time"

// Submission is a flight stored locally, attributed to the user who
// submitted it. The id is generated by the store, never by clients.
type Submission struct {
	ID          string    `json:"id"`
	DiscordUser string    `json:"discorduser"`
	Callsign    string    `json:"call"`
	Plane       string    `json:"plane"`
	Departure   string    `json:"dep"`
	Arrival     string    `json:"ari"`
	SubmittedBy string    `json:"submittedBy"`
	CreatedAt   time.Time `json:"created_at"`
}

// FlightRecord is the public wire shape shared with the external flight
// API. It carries no id; external records are not deletable through this
// service.
type FlightRecord struct {
	DiscordUser string `json:"discorduser"`
	Callsign    string `json:"call"`
	Plane       string `json:"plane"`
	Departure   string `json:"dep"`
	Arrival     string `json:"ari"`
	SubmittedBy string `json:"submittedBy,omitempty"`
}

// FlightFeed is the envelope returned by GET /api/flights and by the
// external flight API.
type FlightFeed struct {
	Status  string         `json:"status"`
	AllData []FlightRecord `json:"allData"`
}

// Record converts a stored submission to its public wire shape.
func (s Submission) Record() FlightRecord {
	return FlightRecord{
		DiscordUser: s.DiscordUser,
		Callsign:    s.Callsign,
		Plane:       s.Plane,
		Departure:   s.Departure,
		Arrival:     s.Arrival,
		SubmittedBy: s.SubmittedBy,
	}
}
