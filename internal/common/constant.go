// Package common contains constants, sentinel errors and small helpers shared
// by the nftmarket client and the gallery gateway.
package common

// AccessTokenHeaderName is the gRPC metadata key carrying the gateway access
// token on outbound requests.
const AccessTokenHeaderName = "access_token"

// LoginMessagePrefix is prepended to a gateway challenge before it is signed
// with the account key.
const LoginMessagePrefix = "nftmarket login: "
