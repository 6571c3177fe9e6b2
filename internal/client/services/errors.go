package services

import "errors"

var (
	ErrIncompleteDraft = errors.New("name, description, price and asset are required")
	ErrItemNotFound    = errors.New("item is not for sale")
	ErrCannotSign      = errors.New("session cannot sign messages")
)
