package gallerypb

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type ChallengeRequest struct {
	Address string `json:"address"`
}

type ChallengeResponse struct {
	Challenge string `json:"challenge"`
}

// LoginRequest carries an EIP-191 signature of the login message built from
// a challenge previously issued for Address.
type LoginRequest struct {
	Address   string `json:"address"`
	Signature []byte `json:"signature"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type GalleryRequest struct{}

type GalleryResponse struct {
	Items []*Item `json:"items"`
	Sold  []*Item `json:"sold"`
}

type MarketRequest struct{}

type MarketResponse struct {
	Items []*Item `json:"items"`
}

// Item is a display record on the wire. Price is a decimal ETH string.
type Item struct {
	ItemId      uint64 `json:"item_id"`
	TokenId     uint64 `json:"token_id"`
	Seller      string `json:"seller"`
	Owner       string `json:"owner"`
	Price       string `json:"price"`
	Sold        bool   `json:"sold"`
	Image       string `json:"image"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
