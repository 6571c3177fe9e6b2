// Package gallerypb defines the wire contract of the gallery gateway: request
// and response messages, a JSON codec registered with gRPC under the
// "json" content subtype, the service descriptor and a client stub.
//
// Messages are plain structs, so both ends must select the codec; the
// client stub does this on every call and the server picks it from the
// request content type.
package gallerypb
