package etcd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tarantool/go-txn/internal/testing/etcd"
)

func TestCluster_TerminateWithoutStart(t *testing.T) {
	t.Parallel()

	cluster := etcd.NewCluster()

	assert.NotPanics(t, cluster.Terminate)
	assert.NotPanics(t, cluster.Terminate)
}

func TestCluster_TerminateNil(t *testing.T) {
	t.Parallel()

	var cluster *etcd.Cluster

	assert.NotPanics(t, cluster.Terminate)
}
