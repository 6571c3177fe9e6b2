package models

// LoadState is the state of a gallery view. A failed load leaves the view
// not-loaded; there is no error state.
type LoadState string

const (
	StateNotLoaded LoadState = "not-loaded"
	StateLoaded    LoadState = "loaded"
)

type Gallery struct {
	State LoadState
	Items []MarketItem
	Sold  []MarketItem
}

// NewGallery builds a loaded gallery from the full item list.
func NewGallery(items []MarketItem) *Gallery {
	if items == nil {
		items = []MarketItem{}
	}
	return &Gallery{State: StateLoaded, Items: items, Sold: PartitionSold(items)}
}

func (g *Gallery) Loaded() bool {
	return g != nil && g.State == StateLoaded
}

func (g *Gallery) Empty() bool {
	return g.Loaded() && len(g.Items) == 0
}
