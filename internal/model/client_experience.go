package model

import "time"

// ClientExperience is a complaint case in the `client_experience`
// collection. The customer link is optional (walk-in complaints carry only
// a typed name); Loesungen is the append-only action log.
type ClientExperience struct {
	ID                    string `json:"id" bson:"id"`
	ClientExperienceInput `bson:",inline"`
	Loesungen             []Solution `json:"loesungen" bson:"loesungen"`
	Status                Status     `json:"status" bson:"status"`
	CreatedBy             string     `json:"created_by" bson:"created_by"`
	CreatedAt             time.Time  `json:"created_at" bson:"created_at"`
}

// ClientExperienceInput holds the mutable fields of a case. DateiUpload is
// a path previously returned by the upload endpoint, or empty.
type ClientExperienceInput struct {
	CustomerID        string `json:"customer_id" bson:"customer_id"`
	CustomerName      string `json:"customer_name" bson:"customer_name"`
	Marke             string `json:"marke" bson:"marke"`
	Modell            string `json:"modell" bson:"modell"`
	Datum             string `json:"datum" bson:"datum"`
	Zeit              string `json:"zeit" bson:"zeit"`
	Kundenreklamation string `json:"kundenreklamation" bson:"kundenreklamation"`
	DateiUpload       string `json:"datei_upload" bson:"datei_upload"`
}

// Solution is one entry of a case's action log. Timestamp and User are
// server-set at append time.
type Solution struct {
	Text      string    `json:"text" bson:"text"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	User      string    `json:"user" bson:"user"`
}
