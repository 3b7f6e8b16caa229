package combination

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"strings"
)

// Item is one (product, sku, quantity) entry of a combination.
type Item struct {
	ProductID string
	SKU       string
	Quantity  int
}

// HashItems returns the combination hash of an item multiset: items sorted by
// SKU, serialised as "sku:qty" joined by "|", SHA-256 hex encoded. Array order
// and price do not affect it; any quantity change does.
func HashItems(items []Item) string {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b Item) int {
		if c := strings.Compare(a.SKU, b.SKU); c != 0 {
			return c
		}
		return a.Quantity - b.Quantity
	})

	parts := make([]string, len(sorted))
	for i, it := range sorted {
		parts[i] = it.SKU + ":" + strconv.Itoa(it.Quantity)
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
