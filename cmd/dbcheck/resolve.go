package main

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strings"
)

// Resolver is the subset of *net.Resolver used for the DNS checks
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
	LookupSRV(ctx context.Context, service, proto, name string) (string, []*net.SRV, error)
}

// Resolution is what the DNS checks found for the database host
type Resolution struct {
	Host  string
	IPv4  []string
	IPv6  []string
	SRV   []*net.SRV
	Hosts string // host:port list built from SRV records, lowest priority first
}

// resolveHost looks up the address records of host and, when service is set,
// the _service._tcp SRV records. An SRV failure is reported but address
// records are still returned.
func resolveHost(ctx context.Context, r Resolver, host, service string) (*Resolution, error) {
	res := &Resolution{Host: host}

	if ip := net.ParseIP(host); ip != nil {
		appendIP(res, ip)
		return res, nil
	}

	addrs, err := r.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", host, err)
	}
	for _, a := range addrs {
		appendIP(res, a.IP)
	}

	if service == "" {
		return res, nil
	}

	_, records, err := r.LookupSRV(ctx, service, "tcp", host)
	if err != nil {
		return res, fmt.Errorf("srv lookup _%s._tcp.%s: %w", service, host, err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Priority == records[j].Priority {
			return records[i].Weight > records[j].Weight
		}
		return records[i].Priority < records[j].Priority
	})
	res.SRV = records

	hosts := make([]string, 0, len(records))
	for _, rec := range records {
		hosts = append(hosts, net.JoinHostPort(strings.TrimSuffix(rec.Target, "."), fmt.Sprint(rec.Port)))
	}
	res.Hosts = strings.Join(hosts, ",")
	return res, nil
}

func appendIP(res *Resolution, ip net.IP) {
	if ip.To4() != nil {
		res.IPv4 = append(res.IPv4, ip.String())
		return
	}
	res.IPv6 = append(res.IPv6, ip.String())
}
