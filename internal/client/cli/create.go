package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/nftmarket/internal/client/services"
	"github.com/dmitrijs2005/nftmarket/internal/client/view"
	"github.com/dmitrijs2005/nftmarket/internal/models"
	"github.com/dmitrijs2005/nftmarket/internal/price"
)

// getSimpleText and getMultiline are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline

// Upload pins a local file as the asset of the current draft. The path is
// taken from args or prompted for.
func (a *App) Upload(ctx context.Context, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		p, err := getSimpleText(a.reader, "Enter asset file path", a.out)
		if err != nil {
			return err
		}
		path = p
	}
	if path == "" {
		return errors.New("file path is required")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if a.config.UploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.UploadTimeout)
		defer cancel()
	}

	fmt.Fprintln(a.out, view.FormatMuted("uploading "+path+"..."))
	if err := a.create.UploadAsset(ctx, &a.draft, f); err != nil {
		return err
	}

	fmt.Fprintln(a.out, view.FormatSuccess("Uploaded: "+a.draft.FileURL))
	return nil
}

// Create fills the draft from prompts and runs the creation workflow. An
// empty answer keeps the value already in the draft.
func (a *App) Create(ctx context.Context) error {
	if err := a.promptField("Asset name", &a.draft.Name); err != nil {
		return err
	}

	desc, err := getMultiline(a.reader, "Asset description", a.out)
	if err != nil {
		return err
	}
	if desc != "" {
		a.draft.Description = desc
	}

	if err := a.promptField("Asset price in ETH", &a.draft.Price); err != nil {
		return err
	}
	if _, err := price.Normalize(a.draft.Price); err != nil {
		return err
	}

	if a.draft.FileURL == "" {
		if err := a.Upload(ctx, nil); err != nil {
			return err
		}
	}

	listing, err := a.create.CreateMarket(ctx, a.draft)
	if err != nil {
		if errors.Is(err, services.ErrIncompleteDraft) {
			return err
		}
		if listing == nil || !listing.MintSent() {
			return err
		}
		// a sent mint may still produce a token; never submit the draft twice
		a.draft = models.ListingDraft{}
		switch {
		case listing.Relistable() && listing.TokenID != 0:
			fmt.Fprintln(a.out, view.FormatWarning(fmt.Sprintf(
				"token #%d was minted but not listed; run 'relist %s'", listing.TokenID, listing.ID)))
		case listing.Relistable():
			fmt.Fprintln(a.out, view.FormatWarning(fmt.Sprintf(
				"mint %s was sent but not confirmed; run 'relist %s' once it is mined", listing.MintTx, listing.ID)))
		}
		return err
	}

	a.draft = models.ListingDraft{}
	fmt.Fprintln(a.out, view.FormatSuccess(fmt.Sprintf("Listed token #%d for %s ETH", listing.TokenID, listing.Price)))
	return nil
}

func (a *App) promptField(prompt string, dst *string) error {
	if *dst != "" {
		prompt += " [" + *dst + "]"
	}
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if v != "" {
		*dst = v
	}
	return nil
}
