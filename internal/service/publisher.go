package service

import (
	"context"
	"fmt"
	"log"

	"postpilot/internal/repository"
)

// Publisher performs the actual platform call for one post and one
// platform. Implementations must be safe for concurrent use; a returned
// error means that single platform attempt failed.
type Publisher interface {
	Publish(ctx context.Context, mediaRef, caption, platform string) error
}

// stubPublisher stands in for the real platform APIs. It refuses
// disconnected platforms so dispatch records a per-platform failure
// instead of pretending the post went out.
type stubPublisher struct {
	ar repository.PlatformAccountRepository
}

func NewStubPublisher(ar repository.PlatformAccountRepository) Publisher {
	return &stubPublisher{ar: ar}
}

func (p *stubPublisher) Publish(ctx context.Context, mediaRef, caption, platform string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	accounts, err := p.ar.List(ctx)
	if err != nil {
		return err
	}

	for _, account := range accounts {
		if account.Platform != platform {
			continue
		}
		if !account.Connected {
			return fmt.Errorf("platform %s is not connected", platform)
		}
		log.Printf("Publishing %s to %s: %q", mediaRef, platform, caption)
		return nil
	}

	return fmt.Errorf("unknown platform %s", platform)
}
