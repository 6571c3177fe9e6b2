package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionSold_IsSubsetAndFilter(t *testing.T) {
	sets := [][]MarketItem{
		nil,
		{},
		{{ItemID: 1}},
		{{ItemID: 1, Sold: true}},
		{{ItemID: 1, Sold: true}, {ItemID: 2}, {ItemID: 3, Sold: true}, {ItemID: 4}},
		{{ItemID: 5}, {ItemID: 6}},
	}

	for _, all := range sets {
		sold := PartitionSold(all)

		var want []MarketItem
		for _, i := range all {
			if i.Sold {
				want = append(want, i)
			}
		}
		assert.Len(t, sold, len(want))
		for n, s := range sold {
			assert.True(t, s.Sold)
			assert.Contains(t, all, s, "sold item must be present in the full list")
			assert.Equal(t, want[n], s, "order must follow the full list")
		}
	}
}

func TestNewGallery(t *testing.T) {
	g := NewGallery([]MarketItem{{ItemID: 1, Sold: true}, {ItemID: 2}})
	assert.True(t, g.Loaded())
	assert.False(t, g.Empty())
	assert.Len(t, g.Items, 2)
	assert.Equal(t, []MarketItem{{ItemID: 1, Sold: true}}, g.Sold)

	empty := NewGallery(nil)
	assert.True(t, empty.Empty())
	assert.NotNil(t, empty.Items)

	var none *Gallery
	assert.False(t, none.Loaded())
}

func TestListingDraft_Complete(t *testing.T) {
	full := ListingDraft{Name: "A", Description: "d", Price: "1", FileURL: "https://ipfs.io/ipfs/cid1"}
	assert.True(t, full.Complete())

	for _, mutate := range []func(*ListingDraft){
		func(d *ListingDraft) { d.Name = "" },
		func(d *ListingDraft) { d.Description = "" },
		func(d *ListingDraft) { d.Price = "" },
		func(d *ListingDraft) { d.FileURL = "" },
	} {
		d := full
		mutate(&d)
		assert.False(t, d.Complete())
	}
}

func TestListing_Relistable(t *testing.T) {
	assert.True(t, (&Listing{Status: ListingOrphaned}).Relistable())
	assert.True(t, (&Listing{Status: ListingUnconfirmed}).Relistable())
	assert.False(t, (&Listing{Status: ListingListing}).Relistable())
	assert.False(t, (&Listing{Status: ListingListed}).Relistable())
	assert.False(t, (&Listing{Status: ListingPending}).Relistable())
}

func TestListing_MintSent(t *testing.T) {
	assert.False(t, (&Listing{Status: ListingPending}).MintSent())
	assert.True(t, (&Listing{Status: ListingUnconfirmed, MintTx: "0x01"}).MintSent())
}
