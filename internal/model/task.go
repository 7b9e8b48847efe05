package model

import "time"

// Task is a contact task in the `tasks` collection. It references a
// customer by id together with a denormalized display name; deleting the
// customer leaves the reference dangling on purpose (no cascade).
type Task struct {
	ID        string `json:"id" bson:"id"`
	TaskInput `bson:",inline"`
	Status    Status    `json:"status" bson:"status"`
	CreatedBy string    `json:"created_by" bson:"created_by"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// TaskInput holds the mutable fields of a task. Status and created_by are
// not part of it: status changes only through the status endpoint and
// created_by is stamped from the authenticated caller.
type TaskInput struct {
	CustomerID       string `json:"customer_id" bson:"customer_id"`
	CustomerName     string `json:"customer_name" bson:"customer_name"`
	DatumKontakt     string `json:"datum_kontakt" bson:"datum_kontakt"`
	ZeitpunktKontakt string `json:"zeitpunkt_kontakt" bson:"zeitpunkt_kontakt"`
	Bemerkungen      string `json:"bemerkungen" bson:"bemerkungen"`
	TelefonNummer    string `json:"telefon_nummer" bson:"telefon_nummer"`
	AssignedTo       string `json:"assigned_to" bson:"assigned_to"`
	AssignedToName   string `json:"assigned_to_name" bson:"assigned_to_name"`
}
