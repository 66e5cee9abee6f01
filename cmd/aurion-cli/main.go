package main

import (
	"context"

	"aurion-client/cmd/aurion-cli/commands"
	"aurion-client/lib/serviceutil"
	"aurion-client/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "aurion-cli")
	telemetry.InitSlog(false)
	commands.ExecuteContext(serviceutil.SignalContext())
}
