package resolver

import (
	"context"
	"errors"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
)

// SelectiveExecutor issues each query over UDP first and transparently
// upgrades to TCP when the UDP response comes back truncated (§4.4).
type SelectiveExecutor struct {
	UDP Executor
	TCP Executor
}

func NewSelectiveExecutor(udp, tcp Executor) *SelectiveExecutor {
	return &SelectiveExecutor{UDP: udp, TCP: tcp}
}

func (s *SelectiveExecutor) Exec(ctx context.Context, q Query) (*dnsmsg.Message, error) {
	msg, err := s.UDP.Exec(ctx, q)
	if err == nil {
		return msg, nil
	}

	var trunc *ResponseTruncated
	if !errors.As(err, &trunc) {
		return nil, err
	}

	return s.TCP.Exec(ctx, q)
}
