package model

type UpdateRequestBody struct {
	Pressed bool    `json:"pressed"`
	Touches []Touch `json:"touches"`
}

type UpdateResponse struct {
	Evaluated bool   `json:"evaluated"`
	State     string `json:"state"`
	Word      Word   `json:"word"`
	Output    *Chord `json:"output,omitempty"`
}

type SessionResponse struct {
	ID      string `json:"id"`
	Devices []int  `json:"devices"`
	Layout  string `json:"layout"`
}

type SnapshotResponse struct {
	ID        string `json:"id"`
	State     string `json:"state"`
	Word      Word   `json:"word"`
	Previous  Word   `json:"previous"`
	Pending   []int  `json:"pending"`
	Described string `json:"described"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
