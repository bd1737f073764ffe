// Package hostsfile parses the traditional /etc/hosts format: one entry
// per line, "address whitespace hostname [whitespace alias]*", comments
// starting with '#' extending to end of line, blank lines ignored.
package hostsfile

import (
	"bufio"
	"io"
	"net"
	"strings"
)

// Table is the parsed, indexed contents of a hosts file: a
// case-insensitive hostname→address index and an address→hostnames index
// that preserves file order and does not deduplicate (matching the
// built-in resolver's ambiguity notes on repeated entries).
type Table struct {
	byNameV4 map[string][]net.IP
	byNameV6 map[string][]net.IP
	byAddr   map[string][]string
}

func newTable() *Table {
	return &Table{
		byNameV4: make(map[string][]net.IP),
		byNameV6: make(map[string][]net.IP),
		byAddr:   make(map[string][]string),
	}
}

// Parse reads a hosts file from r.
func Parse(r io.Reader) (*Table, error) {
	t := newTable()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		addrField := stripZone(fields[0])
		ip := net.ParseIP(addrField)
		if ip == nil {
			// invalid address strings cause the entry to be skipped silently.
			continue
		}

		names := fields[1:]
		isV4 := ip.To4() != nil

		for _, name := range names {
			key := strings.ToLower(name)
			if isV4 {
				t.byNameV4[key] = append(t.byNameV4[key], ip)
			} else {
				t.byNameV6[key] = append(t.byNameV6[key], ip)
			}
			t.byAddr[ip.String()] = append(t.byAddr[ip.String()], name)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func stripZone(addr string) string {
	if i := strings.IndexByte(addr, '%'); i >= 0 {
		return addr[:i]
	}
	return addr
}

// LookupV4 returns every IPv4 address mapped to name (case-insensitive).
func (t *Table) LookupV4(name string) []net.IP {
	return t.byNameV4[strings.ToLower(name)]
}

// LookupV6 returns every IPv6 address mapped to name (case-insensitive).
func (t *Table) LookupV6(name string) []net.IP {
	return t.byNameV6[strings.ToLower(name)]
}

// Names returns every hostname mapped to ip, in file order, without
// deduplication and with case preserved exactly as written in the file.
func (t *Table) Names(ip net.IP) []string {
	return t.byAddr[ip.String()]
}
