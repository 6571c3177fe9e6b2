// Package models defines the marketplace data shared by the terminal client
// and the gallery gateway: metadata documents, display records, galleries,
// listing drafts and the listing journal record.
package models
