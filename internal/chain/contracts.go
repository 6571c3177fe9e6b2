package chain

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

//go:embed abi/NFT.json
var tokenArtifact []byte

//go:embed abi/NFTMarketplace.json
var marketArtifact []byte

var (
	tokenABI  = mustLoadABI("NFT", tokenArtifact)
	marketABI = mustLoadABI("NFTMarketplace", marketArtifact)
)

// Contract selects one of the two contracts a client is bound to.
type Contract int

const (
	Token Contract = iota
	Market
)

func (c Contract) String() string {
	switch c {
	case Token:
		return "token"
	case Market:
		return "market"
	default:
		return fmt.Sprintf("contract(%d)", int(c))
	}
}

// Addresses are the deployed contract addresses of one network.
type Addresses struct {
	Token  common.Address
	Market common.Address
}

// ParseAddresses validates hex addresses coming from configuration.
func ParseAddresses(token, market string) (Addresses, error) {
	if !common.IsHexAddress(token) {
		return Addresses{}, fmt.Errorf("invalid token address %q", token)
	}
	if !common.IsHexAddress(market) {
		return Addresses{}, fmt.Errorf("invalid market address %q", market)
	}
	return Addresses{
		Token:  common.HexToAddress(token),
		Market: common.HexToAddress(market),
	}, nil
}

// ItemRecord is a marketplace item as returned by the fetch* views.
type ItemRecord struct {
	ItemId      *big.Int
	NftContract common.Address
	TokenId     *big.Int
	Seller      common.Address
	Owner       common.Address
	Price       *big.Int
	Sold        bool
}

// TokenABI returns the parsed token contract interface.
func TokenABI() abi.ABI { return tokenABI }

// MarketABI returns the parsed marketplace contract interface.
func MarketABI() abi.ABI { return marketABI }

func mustLoadABI(name string, artifact []byte) abi.ABI {
	var a struct {
		ABI json.RawMessage `json:"abi"`
	}
	if err := json.Unmarshal(artifact, &a); err != nil {
		panic(fmt.Sprintf("chain: decode %s artifact: %v", name, err))
	}
	parsed, err := abi.JSON(bytes.NewReader(a.ABI))
	if err != nil {
		panic(fmt.Sprintf("chain: parse %s abi: %v", name, err))
	}
	return parsed
}
