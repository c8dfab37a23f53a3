package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyperjump/eiga/internal/errs"
)

// RewriteQueryWithImage asks a multimodal model to fold what it sees in the
// image into the text query, returning a query suited to catalog search.
// An empty response is a ProviderFailure; the caller decides whether the
// search proceeds without the image.
func RewriteQueryWithImage(ctx context.Context, client VisionClient, query string, image []byte) (string, error) {
	if client == nil {
		return "", errs.InvalidArgument("no vision client configured")
	}
	resp, err := client.GenerateWithImage(ctx, fmt.Sprintf(describeImagePrompt, query), image)
	if err != nil {
		return "", err
	}
	rewritten := strings.Trim(strings.TrimSpace(resp), `"`)
	if rewritten == "" {
		return "", errs.ProviderFailure("image query rewrite returned empty text")
	}
	return rewritten, nil
}
