package models

type Admin struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
}

func (a Admin) IsZero() bool {
	return a == Admin{}
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Password     string `json:"password"`
}

// AuthResult is the data of a login or signup response: the access token
// next to whatever profile fields the backend chose to include.
type AuthResult struct {
	AccessToken string `json:"accessToken"`
	Admin
}
