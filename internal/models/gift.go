package models

// Tier represents the coarse prize category of a gift
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
	TierE Tier = "E" // reserved, never offered on the wheel
	TierF Tier = "F" // no-win placeholder category
)

// Gift represents a single prize on the wheel
type Gift struct {
	ID     string  `bson:"_id" json:"id"`
	Name   string  `bson:"name" json:"name"`
	Tier   Tier    `bson:"tier" json:"tier"`
	Weight float64 `bson:"weight" json:"weight"` // relative probability mass; 0 means never drawn by weight
}

// DefaultCatalog returns the built-in gift catalog used to seed an empty
// catalog collection. Weights are campaign-tuned and editable at runtime.
func DefaultCatalog() []Gift {
	return []Gift{
		{ID: "F1", Name: "Qazanmadın", Tier: TierF, Weight: 0},
		{ID: "A1", Name: "Ödənişsiz", Tier: TierA, Weight: 0},
		{ID: "B1", Name: "9 AZN", Tier: TierB, Weight: 0},
		{ID: "B2", Name: "54 AZN", Tier: TierB, Weight: 20},
		{ID: "B3", Name: "69 AZN", Tier: TierB, Weight: 20},
		{ID: "B4", Name: "99 AZN", Tier: TierB, Weight: 0},
		{ID: "B5", Name: "49 AZN", Tier: TierB, Weight: 0},
		{ID: "C1", Name: "57 AZN", Tier: TierC, Weight: 20},
		{ID: "C2", Name: "125 AZN", Tier: TierC, Weight: 0},
		{ID: "C3", Name: "77 AZN", Tier: TierC, Weight: 20},
		{ID: "C4", Name: "35 AZN", Tier: TierC, Weight: 0},
		{ID: "C5", Name: "80 AZN", Tier: TierC, Weight: 0},
		{ID: "D1", Name: "1 AZN", Tier: TierD, Weight: 0},
		{ID: "D2", Name: "75 AZN", Tier: TierD, Weight: 0},
		{ID: "D3", Name: "59 AZN", Tier: TierD, Weight: 20},
		{ID: "D4", Name: "89 AZN", Tier: TierD, Weight: 0},
	}
}
