// Package chain talks to the token and marketplace contracts over JSON-RPC.
//
// A Connector turns the configured wallet and network into a short-lived
// Session: an RPC connection plus a signer bound to the network's chain id.
// Sessions are acquired at the start of every user action and closed after
// it. Read-only clients for a fixed account are built with NewReader.
//
// All contract access goes through two primitives, CallRead (eth_call) and
// CallWrite (sign, submit and wait for inclusion). The typed helpers on
// Client are thin wrappers around them.
package chain
