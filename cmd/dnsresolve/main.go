// Command dnsresolve is a small example CLI exercising the resolver
// library end to end: build a resolver from system configuration (or an
// explicit nameserver list), resolve names given on the command line, and
// drain cleanly on Ctrl-C.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
	"github.com/KarpelesLab/dnsresolver/resolver"
	"github.com/KarpelesLab/dnsresolver/resolver/sysconfig"
	"github.com/KarpelesLab/shutdown"
)

func main() {
	nameservers := flag.String("ns", "", "comma-separated nameserver list (overrides system config)")
	hostsPath := flag.String("hosts", "/etc/hosts", "hosts file to consult before the network")
	recordType := flag.String("type", "A", "record type to query (A, AAAA, MX, TXT, ...)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] name [name...]\n", os.Args[0])
		os.Exit(2)
	}

	shutdown.SetupSignals()

	b := resolver.NewBuilder()
	b.HostsPath = *hostsPath
	if *nameservers != "" {
		b.Nameservers = strings.Split(*nameservers, ",")
	} else {
		b.Source = sysconfig.NewChain(sysconfig.NewResolvConf())
	}

	res, err := b.Build(context.Background())
	if err != nil {
		log.Fatalf("[main] failed to build resolver: %s", err)
	}

	shutdown.Register(func() error {
		log.Printf("[main] draining resolver %s", res.InstanceID)
		return res.Close()
	})

	typ, ok := dnsmsg.StringToType[strings.ToUpper(*recordType)]
	if !ok {
		log.Fatalf("[main] unknown record type %q", *recordType)
	}

	ctx := context.Background()
	for _, name := range flag.Args() {
		values, err := res.ResolveAll(ctx, name, typ)
		if err != nil {
			log.Printf("[main] %s %s: %s", name, typ, err)
			continue
		}
		for _, v := range values {
			fmt.Printf("%s\t%s\t%s\n", name, typ, v)
		}
	}

	log.Printf("[main] done")
}
