package models

import "time"

// SpinRecord represents one completed spin for a phone number.
// Immutable once written, except Taken which is set by an explicit claim.
type SpinRecord struct {
	Date       time.Time `bson:"date" json:"date"`
	SpinNumber int       `bson:"spinNumber" json:"spinNumber"` // server-assigned counter
	GiftID     string    `bson:"giftId" json:"giftId"`
	GiftName   string    `bson:"giftName" json:"giftName"`
	Tier       Tier      `bson:"tier" json:"tier"`
	Taken      bool      `bson:"taken,omitempty" json:"taken,omitempty"`
}

// SpinLedger is the append-only spin history for a normalized phone number.
// It is a local cache/history aid; the remote service stays authoritative
// for daily quota.
type SpinLedger struct {
	Phone string       `bson:"_id" json:"phone"`
	Name  string       `bson:"name" json:"name"`
	Spins []SpinRecord `bson:"spins" json:"spins"`
}
