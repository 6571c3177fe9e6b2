package listings

const listingColumns = `id, name, description, price, file_url, metadata_uri, status,
	token_id, mint_tx, list_tx, error, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}
