package models

// Metadata is the JSON document pinned next to every asset and referenced
// by the token URI.
type Metadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// MarketItem is a display record: on-chain item data joined with the
// token's off-chain metadata. Price is the human decimal string.
type MarketItem struct {
	ItemID      uint64 `json:"item_id"`
	TokenID     uint64 `json:"token_id"`
	Seller      string `json:"seller"`
	Owner       string `json:"owner"`
	Price       string `json:"price"`
	Sold        bool   `json:"sold"`
	Image       string `json:"image"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PartitionSold returns the sold subset of items, preserving order.
// The result never contains an item that is not in items.
func PartitionSold(items []MarketItem) []MarketItem {
	sold := make([]MarketItem, 0, len(items))
	for _, i := range items {
		if i.Sold {
			sold = append(sold, i)
		}
	}
	return sold
}
