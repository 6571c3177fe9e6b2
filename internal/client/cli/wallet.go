package cli

import (
	"context"

	"github.com/dmitrijs2005/nftmarket/internal/common"
)

// getPassword is an indirection used to facilitate testing.
var getPassword = GetPassword

// passphrase prompts for the keystore passphrase without echo. An empty
// answer is returned as is; the wallet treats it as a refusal.
func (a *App) passphrase(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pw, err := getPassword(a.out, prompt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)

	return string(pw), nil
}
