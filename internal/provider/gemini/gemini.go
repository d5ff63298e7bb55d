package gemini

import (
	"context"
	"time"

	provider "careflow/internal/provider/models"
)

// GeminiProvider implements the Provider interface for Google Gemini.
type GeminiProvider struct {
	client    GeminiClient
	modelName string
}

// New creates a new GeminiProvider with the specified client and model.
func New(client GeminiClient, modelName string) *GeminiProvider {
	return &GeminiProvider{
		client:    client,
		modelName: modelName,
	}
}

// Generate sends a request to the Gemini API and returns the response.
// Tool definitions travel on the request; the provider holds no tool state.
func (p *GeminiProvider) Generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	// Convert internal types to Gemini types
	contents, systemInstruction := toGeminiContents(req.History)
	config := toGeminiConfig(req.Config)
	config.SystemInstruction = systemInstruction

	if len(req.Tools) > 0 {
		config.Tools = toGeminiTools(req.Tools)
	}

	// Call Gemini API
	start := time.Now()
	resp, err := p.client.GenerateContent(ctx, p.modelName, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	// Convert response
	out, err := fromGeminiResponse(resp, p.modelName)
	if out != nil {
		out.Metadata.LatencyMs = time.Since(start).Milliseconds()
	}
	return out, err
}

// GetModel returns the currently active model name.
func (p *GeminiProvider) GetModel() string {
	return p.modelName
}
