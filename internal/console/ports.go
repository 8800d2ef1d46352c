package console

import (
	"context"

	"github.com/IgorGrieder/encurtador-console/internal/links"
)

// LinksAPI is the remote short-link service. Create and Delete return an
// error only when no HTTP response was obtained; any status, success or not,
// comes back in the MutationResult.
type LinksAPI interface {
	List(ctx context.Context) ([]links.Link, error)
	Create(ctx context.Context, req links.CreateLinkRequest) (links.MutationResult, error)
	Delete(ctx context.Context, code string) (links.MutationResult, error)
}

type Clipboard interface {
	WriteAll(text string) error
}

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Timer is the handle of a scheduled callback.
type Timer interface {
	Stop() bool
}
