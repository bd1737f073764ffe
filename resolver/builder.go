package resolver

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/KarpelesLab/dnsresolver/resolver/hostsfile"
)

// DefaultNameservers is used when no sysconfig.Source yields any
// nameserver, and when no Source is configured at all (§6).
var DefaultNameservers = []string{"1.1.1.1", "8.8.8.8"}

// DefaultTimeout is the wall-clock bound applied to every query when a
// Builder is not given an explicit one.
const DefaultTimeout = 5 * time.Second

// Source is the configuration-discovery collaborator a Builder pulls
// nameservers from (see resolver/sysconfig.Source for the concrete
// implementations; declared again here, structurally, to avoid this
// package importing its own subpackage).
type Source interface {
	Nameservers(ctx context.Context) ([]string, error)
}

// Builder assembles the full decorator stack — outermost first: hosts
// file, cache, coop, retry, fallback, then per nameserver timeout, retry
// and selective UDP/TCP — into a *Resolver,
// the same sequential fail-fast style the teacher's dnsd/main.go uses to
// bring up its listeners.
type Builder struct {
	Source      Source
	Cache       Cache
	HostsPath   string
	Retries     int
	Timeout     time.Duration
	Nameservers []string // overrides Source when non-empty
}

// NewBuilder returns a Builder with the library defaults: DefaultRetries
// retries, DefaultTimeout, and the built-in default nameserver list.
func NewBuilder() *Builder {
	return &Builder{
		Retries: DefaultRetries,
		Timeout: DefaultTimeout,
	}
}

// Build resolves nameservers (Nameservers when non-empty, otherwise
// Source, falling back to DefaultNameservers), loads the hosts file if HostsPath is set, and
// returns the assembled Resolver.
func (b *Builder) Build(ctx context.Context) (*Resolver, error) {
	servers := b.Nameservers
	if len(servers) == 0 && b.Source != nil {
		found, err := b.Source.Nameservers(ctx)
		if err != nil {
			log.Printf("resolver: nameserver discovery failed, using built-in defaults: %s", err)
		} else {
			servers = found
		}
	}
	if len(servers) == 0 {
		servers = DefaultNameservers
	}

	var exec Executor
	var closers []io.Closer
	for i, server := range servers {
		addr, err := ParseNameserverAddr(server)
		if err != nil {
			return nil, err
		}

		var stage Executor
		switch addr.Transport {
		case TransportUDP:
			udp, err := NewUDPExecutor(addr)
			if err != nil {
				return nil, err
			}
			stage = udp
		case TransportTCP:
			tcp, err := NewTCPExecutor(addr)
			if err != nil {
				return nil, err
			}
			closers = append(closers, tcp)
			stage = tcp
		default:
			udp, err := NewUDPExecutor(addr)
			if err != nil {
				return nil, err
			}
			tcp, err := NewTCPExecutor(addr)
			if err != nil {
				return nil, err
			}
			closers = append(closers, tcp)
			stage = NewSelectiveExecutor(udp, tcp)
		}

		stage = NewRetryExecutor(stage, b.Retries)
		stage = NewTimeoutExecutor(stage, b.Timeout)

		if i == 0 {
			exec = stage
			log.Printf("resolver: using nameserver %s as primary", addr.HostPort)
			continue
		}
		exec = NewFallbackExecutor(exec, stage)
		log.Printf("resolver: using nameserver %s as fallback", addr.HostPort)
	}

	exec = NewRetryExecutor(exec, b.Retries)
	exec = NewCoopExecutor(exec)

	cache := b.Cache
	if cache == nil {
		cache = NewMemCache()
	}
	exec = NewCachingExecutor(exec, cache)

	if b.HostsPath != "" {
		f, err := os.Open(b.HostsPath)
		if err != nil {
			return nil, &InvalidConfiguration{Reason: "opening hosts file: " + err.Error()}
		}
		defer f.Close()

		table, err := hostsfile.Parse(f)
		if err != nil {
			return nil, &InvalidConfiguration{Reason: "parsing hosts file: " + err.Error()}
		}
		exec = NewHostsExecutor(table, exec)
		log.Printf("resolver: loaded hosts file %s", b.HostsPath)
	}

	r := NewResolver(exec)
	r.closers = closers
	return r, nil
}
