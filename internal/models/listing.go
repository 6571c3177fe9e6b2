package models

import "time"

// ListingDraft is the mutable create-item form.
type ListingDraft struct {
	Name        string
	Description string
	Price       string

	// FileURL is set once the asset upload has completed.
	FileURL string
	// Uploading is true while an asset upload is in flight.
	Uploading bool
}

// Complete reports whether the draft may be submitted.
func (d ListingDraft) Complete() bool {
	return d.Name != "" && d.Description != "" && d.Price != "" && d.FileURL != ""
}

// ListingStatus tracks how far a creation attempt got.
//
//	pending     -> metadata uploaded, mint not sent or reverted
//	unconfirmed -> mint sent (MintTx set), token id not recorded yet
//	listing     -> listing step in flight; claimed by one process
//	listed      -> market item created
//	orphaned    -> token exists but listing failed; needs relist
type ListingStatus string

const (
	ListingPending     ListingStatus = "pending"
	ListingUnconfirmed ListingStatus = "unconfirmed"
	ListingListing     ListingStatus = "listing"
	ListingListed      ListingStatus = "listed"
	ListingOrphaned    ListingStatus = "orphaned"
)

// Listing is the local journal record of one creation attempt.
type Listing struct {
	ID          string
	Name        string
	Description string
	// Price is the normalized decimal string the user asked for.
	Price       string
	FileURL     string
	MetadataURI string
	Status      ListingStatus
	TokenID     uint64
	MintTx      string
	ListTx      string
	Error       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Relistable reports whether the listing step can be claimed. An
// unconfirmed record first needs its token id recovered from MintTx.
func (l *Listing) Relistable() bool {
	switch l.Status {
	case ListingOrphaned, ListingUnconfirmed:
		return true
	}
	return false
}

// MintSent reports whether a mint transaction reached the node, in which
// case the draft behind the record must not be submitted again.
func (l *Listing) MintSent() bool {
	return l.MintTx != ""
}
