package domain

// CityProfile describes the single city the service operates in.
type CityProfile struct {
	Name         string
	State        string
	Country      string
	Timezone     string
	SupportEmail string
}
