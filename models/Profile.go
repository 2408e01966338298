package models

// Profile describes the catering business using the application.
type Profile struct {
	BusinessName string `json:"businessName"`
	OwnerName    string `json:"ownerName"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
}

// Preferences holds display settings.
type Preferences struct {
	Currency string `json:"currency"`
	Locale   string `json:"locale"`
}

// DefaultPreferences is used until the user saves their own.
var DefaultPreferences = Preferences{Currency: "IDR", Locale: "id-ID"}
