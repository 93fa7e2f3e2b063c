// Package snowflake generates message ids. Snowflake ids are monotonic per
// node, so they double as a stable tiebreak when two messages share a sentAt.
package snowflake

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
	nodeID   int64 = 1
)

// Init sets up the generator node. Call once at startup; machineID must be
// unique per instance in a multi-node deployment (0-1023).
func Init(machineID int64) {
	nodeOnce.Do(func() {
		if machineID < 0 || machineID > 1023 {
			machineID = 1
			zap.L().Warn("invalid snowflake machineID, using default 1")
		}
		nodeID = machineID
		var err error
		node, err = snowflake.NewNode(machineID)
		if err != nil {
			zap.L().Fatal("snowflake node init failed", zap.Error(err))
		}
	})
}

// GenerateID returns the next id as int64.
func GenerateID() int64 {
	if node == nil {
		Init(nodeID)
	}
	return node.Generate().Int64()
}

// GenerateIDString returns the next id as a decimal string, for JSON payloads
// where int64 would lose precision in JavaScript.
func GenerateIDString() string {
	if node == nil {
		Init(nodeID)
	}
	return node.Generate().String()
}
