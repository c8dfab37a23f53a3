package llm

import (
	"context"
	"fmt"
)

// Answer generates a grounded answer to query, restricted to the formatted
// documents block. Failures are ProviderFailure from the client.
func Answer(ctx context.Context, client Client, query, documents string) (string, error) {
	return client.Generate(ctx, fmt.Sprintf(answerPrompt, query, documents))
}
