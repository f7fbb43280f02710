package types

import (
	"strings"

	"github.com/samber/lo"
)

const replIDLength = 40

// RoleKind is how the node describes itself in INFO.
type RoleKind string

const (
	RoleMaster RoleKind = "master"
	RoleSlave  RoleKind = "slave"
)

// Role is informational replication metadata. No replication happens; the
// fields are only displayed.
type Role struct {
	Kind       RoleKind
	ReplID     string
	ReplOffset int64
	MasterAddr string
}

// NewRole builds the role from the --replicaof value. An empty value makes
// the node a master with a fresh replication id; "host port" makes it a
// replica of host:port.
func NewRole(replicaOf string) Role {
	replicaOf = strings.TrimSpace(replicaOf)
	if replicaOf == "" {
		return Role{
			Kind:   RoleMaster,
			ReplID: lo.RandomString(replIDLength, lo.AlphanumericCharset),
		}
	}
	return Role{
		Kind:       RoleSlave,
		MasterAddr: strings.Join(strings.Fields(replicaOf), ":"),
	}
}

func (r Role) IsMaster() bool {
	return r.Kind == RoleMaster
}
