package main

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	addrs  []net.IPAddr
	srv    []*net.SRV
	ipErr  error
	srvErr error
}

func (f *fakeResolver) LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error) {
	return f.addrs, f.ipErr
}

func (f *fakeResolver) LookupSRV(ctx context.Context, service, proto, name string) (string, []*net.SRV, error) {
	return "", f.srv, f.srvErr
}

func TestResolveHost(t *testing.T) {
	r := &fakeResolver{
		addrs: []net.IPAddr{
			{IP: net.ParseIP("10.0.0.5")},
			{IP: net.ParseIP("2001:db8::1")},
		},
		srv: []*net.SRV{
			{Target: "db-2.skyup.test.", Port: 5432, Priority: 20, Weight: 10},
			{Target: "db-1.skyup.test.", Port: 5432, Priority: 10, Weight: 10},
		},
	}

	res, err := resolveHost(context.Background(), r, "db.skyup.test", "postgresql")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.5"}, res.IPv4)
	assert.Equal(t, []string{"2001:db8::1"}, res.IPv6)
	require.Len(t, res.SRV, 2)
	assert.Equal(t, "db-1.skyup.test:5432,db-2.skyup.test:5432", res.Hosts)
}

func TestResolveHostWithoutSRV(t *testing.T) {
	r := &fakeResolver{addrs: []net.IPAddr{{IP: net.ParseIP("10.0.0.5")}}}

	res, err := resolveHost(context.Background(), r, "db.skyup.test", "")
	require.NoError(t, err)
	assert.Empty(t, res.SRV)
	assert.Empty(t, res.Hosts)
}

func TestResolveHostSRVFailureKeepsAddresses(t *testing.T) {
	r := &fakeResolver{
		addrs:  []net.IPAddr{{IP: net.ParseIP("10.0.0.5")}},
		srvErr: errors.New("no such host"),
	}

	res, err := resolveHost(context.Background(), r, "db.skyup.test", "postgresql")
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, []string{"10.0.0.5"}, res.IPv4)
}

func TestResolveHostLiteralIP(t *testing.T) {
	res, err := resolveHost(context.Background(), &fakeResolver{ipErr: errors.New("unused")}, "127.0.0.1", "postgresql")
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1"}, res.IPv4)
}

func TestResolveHostLookupFailure(t *testing.T) {
	res, err := resolveHost(context.Background(), &fakeResolver{ipErr: errors.New("no such host")}, "db.skyup.test", "")
	require.Error(t, err)
	assert.Nil(t, res)
}
