package resolver

import (
	"context"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
)

// FallbackExecutor issues a query on Primary; if that fails, it tries
// Secondary. If Secondary also fails, the caller sees a FallbackFailed
// combining both error messages (§4.9).
type FallbackExecutor struct {
	Primary   Executor
	Secondary Executor
}

func NewFallbackExecutor(primary, secondary Executor) *FallbackExecutor {
	return &FallbackExecutor{Primary: primary, Secondary: secondary}
}

func (f *FallbackExecutor) Exec(ctx context.Context, q Query) (*dnsmsg.Message, error) {
	msg, err := f.Primary.Exec(ctx, q)
	if err == nil {
		return msg, nil
	}

	msg2, err2 := f.Secondary.Exec(ctx, q)
	if err2 == nil {
		return msg2, nil
	}

	return nil, &FallbackFailed{Primary: err, Secondary: err2}
}
