package postgres

import (
	"github.com/bwmarrin/snowflake"
)

// SnowflakeGenerator generates snowflake-based entity IDs.
type SnowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator creates a generator for the given node number.
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &SnowflakeGenerator{node: node}, nil
}

// Generate generates a new ID.
func (g *SnowflakeGenerator) Generate() string {
	return g.node.Generate().String()
}
