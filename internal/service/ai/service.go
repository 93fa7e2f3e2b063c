package ai

import "context"

// Service is the thin application layer over the provider registry.
type Service struct {
	registry *Registry
}

func NewService(registry *Registry) *Service {
	return &Service{registry: registry}
}

// Ask sends one prompt to the named provider (default when empty).
func (s *Service) Ask(ctx context.Context, provider, model, prompt string) (string, error) {
	p, err := s.registry.Get(provider)
	if err != nil {
		return "", err
	}
	return p.Generate(ctx, model, prompt)
}

// Providers lists configured provider names.
func (s *Service) Providers() []string {
	return s.registry.Names()
}

// Models lists the models a provider advertises.
func (s *Service) Models(provider string) ([]string, error) {
	p, err := s.registry.Get(provider)
	if err != nil {
		return nil, err
	}
	return p.Models(), nil
}

// TestConnection verifies the provider accepts the configured credentials.
func (s *Service) TestConnection(ctx context.Context, provider string) error {
	p, err := s.registry.Get(provider)
	if err != nil {
		return err
	}
	return p.TestConnection(ctx)
}
