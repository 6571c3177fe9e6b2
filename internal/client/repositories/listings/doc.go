// Package listings is the local journal of item creation attempts.
//
// Every attempt to mint and list an item is recorded before the first chain
// call and updated after each step (pending -> unconfirmed -> listing ->
// listed, or orphaned when the token was minted but could not be listed).
// The mint hash is written as soon as the node accepts the transaction, so
// a mint whose receipt was never seen is still remembered. Claim hands an
// orphaned or unconfirmed record to exactly one caller for the listing step.
//
// Two implementations share the Repository interface: SQLiteRepository for
// the default local file and PostgresRepository for a shared database.
package listings
