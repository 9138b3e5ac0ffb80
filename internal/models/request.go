package models

// GeocodeRequest is one address whose prefecture, city and town were resolved upstream.
// Address is the text that follows the town name.
type GeocodeRequest struct {
	Input      string `json:"input"`
	Prefecture string `json:"prefecture"`
	City       string `json:"city"`
	Town       string `json:"town"`
	TownID     string `json:"town_id,omitempty"`
	LgCode     string `json:"lg_code,omitempty"`
	Address    string `json:"address"`
}
