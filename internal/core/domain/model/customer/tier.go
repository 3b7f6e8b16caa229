package customer

// LoyaltyTier is a coarse segment derived only from lifetime delivered orders.
type LoyaltyTier string

const (
	TierNew      LoyaltyTier = "new"
	TierRepeat   LoyaltyTier = "repeat"
	TierGold     LoyaltyTier = "gold"
	TierPlatinum LoyaltyTier = "platinum"
)

const (
	repeatThreshold   = 3
	goldThreshold     = 11
	platinumThreshold = 26
)

// TierFor maps a lifetime order count to its tier. It is monotonic in totalOrders.
func TierFor(totalOrders int) LoyaltyTier {
	switch {
	case totalOrders >= platinumThreshold:
		return TierPlatinum
	case totalOrders >= goldThreshold:
		return TierGold
	case totalOrders >= repeatThreshold:
		return TierRepeat
	default:
		return TierNew
	}
}
