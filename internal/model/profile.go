package model

// Profile holds the authenticated user's details from GET /me.
type Profile struct {
	Email    string `json:"email" yaml:"email"`
	Fullname string `json:"fullname" yaml:"fullname"`
}
