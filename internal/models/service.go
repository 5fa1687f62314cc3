package models

// Service is a predefined catalog category providers can advertise under.
type Service struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}
