package main

import (
	"context"

	"social-stats-service/cmd/statsctl/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
