// Package cli provides the interactive marketplace terminal client.
//
// It wires configuration, the content store, the chain connector, the local
// listing journal and the gallery gateway client into an interactive REPL.
// Every command runs with a context that is cancelled on Ctrl-C, so a
// stalled transaction wait can be abandoned without leaving the client.
//
// Commands:
//   - upload <path>  pin an asset for the next listing
//   - create         mint and list the drafted item
//   - gallery        items created by the wallet account, with the sold ones
//   - market         unsold listings; buy <id> purchases one
//   - owned          items bought by the wallet account
//   - pending        journal records that are not listed yet
//   - relist <id>    retry the listing step of an unlisted record
//   - remote [market] the same views served by the gallery gateway
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
