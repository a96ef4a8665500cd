package coach

import (
	"context"

	"github.com/rs/zerolog"

	"lakshya-career-assistant/internal/domain"
	"lakshya-career-assistant/internal/domain/ports/adapter"
)

var _ Provider = (*Cascade)(nil)

// Cascade tries providers in order and answers with the first success.
// Put a KeywordCoach last and the cascade never fails.
type Cascade struct {
	providers []Provider
	log       *zerolog.Logger
}

func NewCascade(logger *zerolog.Logger, providers ...Provider) *Cascade {
	return &Cascade{providers: providers, log: logger}
}

func (c *Cascade) Respond(ctx context.Context, message string) (string, error) {
	for i, p := range c.providers {
		reply, err := p.Respond(ctx, message)
		if err == nil {
			return reply, nil
		}
		c.log.Debug().Err(err).Int("provider", i).Msg("provider failed, trying next")
	}
	return "", domain.ErrCoachUnavailable
}

// Status reports the first provider that claims to be online, otherwise
// the status of the last (fallback) provider.
func (c *Cascade) Status(ctx context.Context) adapter.ModelInfo {
	var last adapter.ModelInfo
	for _, p := range c.providers {
		last = p.Status(ctx)
		if last.Status == "online" {
			return last
		}
	}
	return last
}
