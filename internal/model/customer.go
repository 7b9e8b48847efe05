package model

import "time"

// Customer is a dealership customer record in the `customers` collection.
// Wire and storage field names follow the original German schema. A customer
// owns zero or more vehicles (cascade-deleted with it) and carries two
// append-only logs: Bemerkungen (remarks) and Korrespondenz.
type Customer struct {
	ID            string `json:"id" bson:"id"`
	CustomerInput `bson:",inline"`
	Bemerkungen   []Remark         `json:"bemerkungen" bson:"bemerkungen"`
	Korrespondenz []Correspondence `json:"korrespondenz" bson:"korrespondenz"`
	CreatedAt     time.Time        `json:"created_at" bson:"created_at"`
}

// CustomerInput holds the mutable business fields. It is bound directly
// from create/update request bodies and written with a single $set on
// update, so id, created_at and the two logs are never touched by a PUT.
type CustomerInput struct {
	KundenNr     string `json:"kunden_nr" bson:"kunden_nr"`
	Vorname      string `json:"vorname" bson:"vorname"`
	Name         string `json:"name" bson:"name"`
	Firma        string `json:"firma" bson:"firma"`
	Strasse      string `json:"strasse" bson:"strasse"`
	PLZ          string `json:"plz" bson:"plz"`
	Ort          string `json:"ort" bson:"ort"`
	TelefonP     string `json:"telefon_p" bson:"telefon_p"`
	TelefonG     string `json:"telefon_g" bson:"telefon_g"`
	Natel        string `json:"natel" bson:"natel"`
	EmailP       string `json:"email_p" bson:"email_p"`
	EmailG       string `json:"email_g" bson:"email_g"`
	Geburtsdatum string `json:"geburtsdatum" bson:"geburtsdatum"`
}

// Remark is one entry of a customer's Bemerkungen log. Timestamp and User
// are server-set at append time; client-supplied values are ignored.
type Remark struct {
	Text      string    `json:"text" bson:"text"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	User      string    `json:"user" bson:"user"`
}

// Correspondence is one entry of a customer's Korrespondenz log: a dated
// note with an optional free-text body and up to three attachment
// references (paths returned by the upload endpoint). Timestamp and User
// are server-set.
type Correspondence struct {
	Bemerkung string    `json:"bemerkung" bson:"bemerkung"`
	Datum     string    `json:"datum" bson:"datum"`
	Zeit      string    `json:"zeit" bson:"zeit"`
	Textfeld  string    `json:"textfeld" bson:"textfeld"`
	Upload1   string    `json:"upload1" bson:"upload1"`
	Upload2   string    `json:"upload2" bson:"upload2"`
	Upload3   string    `json:"upload3" bson:"upload3"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	User      string    `json:"user" bson:"user"`
}
