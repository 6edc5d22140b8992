package common

import (
	"fmt"
	"os"

	"github.com/bwmarrin/snowflake"
)

var snowflakeNode *snowflake.Node

func init() {
	node, err := snowflake.NewNode(int64(os.Getpid() % 1024))
	if err != nil {
		panic(err)
	}
	snowflakeNode = node
}

// UUIDint64 returns a time-ordered unique int64 id.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns the string form of a generated id.
func UUID() string {
	return snowflakeNode.Generate().String()
}

// NextFileName builds a unique stored-object name keeping the extension.
func NextFileName(ext string) string {
	return fmt.Sprintf("%s%s", UUID(), ext)
}
