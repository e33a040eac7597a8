package main

import (
	"net"
	"testing"

	"github.com/fzft/go-numeric-display/config"
	"github.com/stretchr/testify/assert"
)

func TestBootAddressPrefersStaticConfig(t *testing.T) {
	ip := bootAddress(config.NetworkConfig{IP: "192.168.1.40"})
	assert.Equal(t, net.IPv4(192, 168, 1, 40).To4(), ip)
}

func TestBootAddressIgnoresLoopback(t *testing.T) {
	ip := bootAddress(config.NetworkConfig{})
	if ip != nil {
		assert.False(t, ip.IsLoopback())
	}
}

func TestVersion(t *testing.T) {
	assert.Contains(t, Version(), "git:"+DisplayGitSHA1())
	assert.NotEmpty(t, DisplayBuildIdRaw())
	assert.Equal(t, "unknown", DisplayGitDirty())
}
