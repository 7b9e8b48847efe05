package model

import "time"

// Employee is a record in the `employees` collection. Employees have no
// relationships to other entities. EintrittFirma and Geburtstag are
// date-valued strings in YYYY-MM-DD form, as entered in the UI.
type Employee struct {
	ID            string `json:"id" bson:"id"`
	EmployeeInput `bson:",inline"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// EmployeeInput holds the mutable fields of an employee.
type EmployeeInput struct {
	Vorname       string `json:"vorname" bson:"vorname"`
	Name          string `json:"name" bson:"name"`
	Strasse       string `json:"strasse" bson:"strasse"`
	PLZ           string `json:"plz" bson:"plz"`
	Ort           string `json:"ort" bson:"ort"`
	Email         string `json:"email" bson:"email"`
	Telefon       string `json:"telefon" bson:"telefon"`
	EintrittFirma string `json:"eintritt_firma" bson:"eintritt_firma"`
	Geburtstag    string `json:"geburtstag" bson:"geburtstag"`
}
