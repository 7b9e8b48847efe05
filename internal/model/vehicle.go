package model

import "time"

// Vehicle is a record in the `vehicles` collection. Every vehicle belongs
// to exactly one customer and is deleted automatically when that customer
// is deleted; otherwise its lifecycle is independent.
type Vehicle struct {
	ID           string `json:"id" bson:"id"`
	VehicleInput `bson:",inline"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// VehicleInput holds the mutable fields of a vehicle. CustomerID is the
// owning customer's generated id; the CSV importer resolves it from the
// business key kunden_nr instead.
type VehicleInput struct {
	CustomerID       string `json:"customer_id" bson:"customer_id"`
	Marke            string `json:"marke" bson:"marke"`
	Modell           string `json:"modell" bson:"modell"`
	ChassisNr        string `json:"chassis_nr" bson:"chassis_nr"`
	StammNr          string `json:"stamm_nr" bson:"stamm_nr"`
	TypenscheinNr    string `json:"typenschein_nr" bson:"typenschein_nr"`
	Farbe            string `json:"farbe" bson:"farbe"`
	Inverkehrsetzung string `json:"inverkehrsetzung" bson:"inverkehrsetzung"`
	KmStand          string `json:"km_stand" bson:"km_stand"`
	VistaNr          string `json:"vista_nr" bson:"vista_nr"`
	Verkaeufer       string `json:"verkaeufer" bson:"verkaeufer"`
	Kundenberater    string `json:"kundenberater" bson:"kundenberater"`
}
