package domain

import "time"

// EntryFields holds the editable fields of a test entry. Everything is
// free text; the two time fields are constrained to m:ss (see normalize.go).
type EntryFields struct {
	Date               string `json:"date"`
	Foam               string `json:"foam"`
	Fuel               string `json:"fuel"`
	TestType           string `json:"testType"`
	AirTemp            string `json:"airTemp"`
	Wind               string `json:"wind"`
	FuelTemp           string `json:"fuelTemp"`
	SolutionTemp       string `json:"solutionTemp"`
	ControlTime        string `json:"controlTime"`
	ExtinguishmentTime string `json:"extinguishmentTime"`
}

// Entry is one foam test record. ID and CreatedAt are immutable after
// creation; UpdatedAt is refreshed on every update.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	EntryFields
}

// ProjectRecord is the unit of storage: the full entry list for one
// project, stored as a single JSON value in the key-value store.
// Entries keep insertion order; presentation order is computed at read
// time.
type ProjectRecord struct {
	Entries []Entry `json:"entries"`
}
