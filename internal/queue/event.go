// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// CustomerDeletedEvent is published after a customer and its vehicles were
// deleted. The cascade runs as two sequential document operations without a
// transaction, so a crash in between can orphan vehicles; consumers re-run
// the vehicle sweep for the customer to close that window.
type CustomerDeletedEvent struct {
	CustomerID      string `json:"customer_id"`
	KundenNr        string `json:"kunden_nr"`
	DeletedBy       string `json:"deleted_by"`
	VehiclesDeleted int64  `json:"vehicles_deleted"`
	DeletedAt       string `json:"deleted_at"`
}
