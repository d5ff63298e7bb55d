package models

import (
	"context"
)

// Provider is the inference-client boundary: it sends a structured
// conversation to a language-inference backend and returns either free-text
// content or a list of requested tool invocations.
type Provider interface {
	// Generate sends a request to the model and returns the response.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// GetModel returns the currently active model name.
	GetModel() string
}
