package params

import "cfgtemplate"

// ClusterParm identifies a cluster configuration parameter.
type ClusterParm int8

const (
	NumNodes ClusterParm = iota
	ZKTimeout
	QuorumWrite
	InsertFlush
)

var clusterParmNames = [...]string{
	NumNodes:    "NumNodes",
	ZKTimeout:   "ZKTimeout",
	QuorumWrite: "QuorumWrite",
	InsertFlush: "InsertFlush",
}

func (p ClusterParm) String() string {
	if p >= 0 && int(p) < len(clusterParmNames) {
		return clusterParmNames[p]
	}
	return "ClusterParm(unknown)"
}

// AllClusterParms returns every cluster parameter.
func AllClusterParms() []ClusterParm {
	return []ClusterParm{NumNodes, ZKTimeout, QuorumWrite, InsertFlush}
}

// ClusterConfig is the registry of cluster parameters.
type ClusterConfig = cfgtemplate.Registry[ClusterParm]

// ClusterBuilder returns a builder wired with every cluster parameter.
func ClusterBuilder() *cfgtemplate.Builder[ClusterParm] {
	return cfgtemplate.NewBuilder[ClusterParm]().
		WithMembers(AllClusterParms()...).
		Define(NumNodes, cfgtemplate.IntReadOnly[int8]("NUM_NODES", 3, "Number of nodes in the cluster.")).
		Define(ZKTimeout, cfgtemplate.IntReadOnly[int64]("ZK_TIMEOUT", 10000, "Zookeeper timeout in milliseconds")).
		Define(QuorumWrite, cfgtemplate.StrReadOnly("QUORUM_WRITE", "true", "Is quorum write set")).
		Define(InsertFlush, cfgtemplate.BoolReadOnly("INSERT_FLUSH", true, "Does each insert flush?"))
}

// NewClusterConfig builds the cluster registry from an override table.
func NewClusterConfig(overrides map[string]string) (*ClusterConfig, error) {
	return ClusterBuilder().WithOverrides(overrides).Build()
}
