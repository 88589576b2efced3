package containers

import (
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/stretchr/testify/assert"
)

func TestContainerConfig(t *testing.T) {
	c := &Container{
		Name:        "cassandra",
		Image:       "cassandra:4.1",
		HostNetwork: true,
		Mounts: []Mount{
			{Source: "/root/cassandra/conf/cassandra.yaml", Target: "/etc/cassandra/cassandra.yaml"},
		},
	}
	cfg, hostCfg := c.config()
	assert.Equal(t, "cassandra:4.1", cfg.Image)
	assert.Equal(t, container.NetworkMode("host"), hostCfg.NetworkMode)
	assert.Equal(t, []mount.Mount{{
		Type:   mount.TypeBind,
		Source: "/root/cassandra/conf/cassandra.yaml",
		Target: "/etc/cassandra/cassandra.yaml",
	}}, hostCfg.Mounts)

	_, hostCfg = (&Container{Name: "x", Image: "y"}).config()
	assert.Empty(t, hostCfg.NetworkMode)
	assert.Empty(t, hostCfg.Mounts)
}

func TestLastLine(t *testing.T) {
	assert.Equal(t, "error: boom", lastLine("starting\nerror: boom\n"))
	assert.Equal(t, "single", lastLine("single"))
	assert.Equal(t, "", lastLine(""))
}
