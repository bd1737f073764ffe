package sysconfig

import (
	"context"
	"log"
)

// Chain tries each Source in order, falling open to the next one on any
// error or empty result — the same fail-open policy the cache contract
// uses for a failed Get.
type Chain struct {
	Sources []Source
}

func NewChain(sources ...Source) *Chain {
	return &Chain{Sources: sources}
}

func (c *Chain) Nameservers(ctx context.Context) ([]string, error) {
	var lastErr error
	for _, s := range c.Sources {
		servers, err := s.Nameservers(ctx)
		if err != nil {
			log.Printf("sysconfig: source failed, trying next: %s", err)
			lastErr = err
			continue
		}
		if len(servers) == 0 {
			continue
		}
		return servers, nil
	}
	return nil, lastErr
}
