// Package assistant defines the gateway port to the language-model
// collaborator. The core hands it the digest plus the raw transaction list
// and the user's question; what model or transport produces the answer is
// the adapter's business, and the answer is never parsed or validated.
package assistant

import (
	"context"

	"fintrack/internal/core"
)

type Gateway interface {
	Answer(ctx context.Context, digest core.Digest, records []core.Transaction, question string) (string, error)
}
