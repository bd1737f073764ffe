package sysconfig

import (
	"bufio"
	"context"
	"os"
	"strings"
)

// DefaultResolvConfPath is where ResolvConf looks unless told otherwise.
const DefaultResolvConfPath = "/etc/resolv.conf"

// ResolvConf parses the traditional "nameserver x.x.x.x" lines out of a
// resolv.conf-style file. No third-party resolv.conf parser appears
// anywhere in the retrieved corpus, so this one stays on the standard
// library.
type ResolvConf struct {
	Path string
}

// NewResolvConf builds a ResolvConf reading the standard system path.
func NewResolvConf() *ResolvConf {
	return &ResolvConf{Path: DefaultResolvConfPath}
}

func (r *ResolvConf) Nameservers(ctx context.Context) ([]string, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var servers []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != "nameserver" {
			continue
		}
		servers = append(servers, fields[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return servers, nil
}
