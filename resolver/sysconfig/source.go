// Package sysconfig supplies resolver.Builder with the nameserver list
// it needs, from whichever external collaborator the deployment prefers:
// a local resolv.conf, a centrally managed REST endpoint, or a fallback
// chain of both.
package sysconfig

import "context"

// Source is the pluggable "external collaborator" the core resolver
// relies on for nameserver discovery. A missing/unreadable source falls
// back to resolver.DefaultNameservers at the Builder level.
type Source interface {
	Nameservers(ctx context.Context) ([]string, error)
}
