// Package etcd runs in-process etcd clusters for integration tests.
package etcd

import (
	"sync"

	"go.etcd.io/etcd/client/pkg/v3/testutil"
	"go.etcd.io/etcd/tests/v3/framework/integration"
)

// Cluster is an etcd cluster started on first use.
type Cluster struct {
	cfg     integration.ClusterConfig
	once    sync.Once
	tb      *quietTB
	cluster *integration.Cluster
}

// NewCluster returns a single-member cluster.
func NewCluster() *Cluster {
	return NewClusterWithConfig(integration.ClusterConfig{Size: 1}) //nolint:exhaustruct
}

// NewClusterWithConfig returns a cluster built from cfg.
func NewClusterWithConfig(cfg integration.ClusterConfig) *Cluster {
	return &Cluster{
		cfg:     cfg,
		once:    sync.Once{},
		tb:      &quietTB{name: "txn_cluster"}, //nolint:exhaustruct
		cluster: nil,
	}
}

// Endpoints returns the gRPC endpoints of the first member.
func (c *Cluster) Endpoints() []string {
	c.start()

	return c.cluster.Client(0).Endpoints()
}

// Terminate stops the cluster if it was started. It is safe to call on nil.
func (c *Cluster) Terminate() {
	if c == nil {
		return
	}

	if c.cluster != nil {
		c.cluster.Terminate(nil)
		c.cluster = nil
	}

	c.tb.runCleanups()
}

func (c *Cluster) start() {
	c.once.Do(func() {
		c.cluster = integration.NewCluster(c.tb, &c.cfg)
	})
}

// Prepare sets up the etcd test framework for tb without goroutine leak checks.
func Prepare(tb testutil.TB) {
	integration.BeforeTest(Silence(tb), integration.WithoutGoLeakDetection())
}
