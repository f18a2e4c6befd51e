// Package flags holds the command-line flags and setup helpers shared by the
// commands under cmd/.
package flags

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ruteri/bzz-gateway-client/bzz"
	"github.com/ruteri/bzz-gateway-client/common"
	"github.com/ruteri/bzz-gateway-client/dirs/tarfs"
	"github.com/urfave/cli/v2"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String(LogServiceFlag.Name)

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

// ConfigureClient builds the gateway client from the common flags. Directories
// are transferred as TAR streams.
func ConfigureClient(cCtx *cli.Context, logger *slog.Logger) (*bzz.Client, error) {
	timeout := time.Duration(cCtx.Int64(TimeoutSecondsFlag.Name)) * time.Second

	return bzz.NewClient(&bzz.ClientConfig{
		URL:         cCtx.String(GatewayURLFlag.Name),
		Timeout:     timeout,
		Directories: tarfs.New(),
		Log:         logger,
	})
}

var GatewayURLFlag = &cli.StringFlag{
	Name:    "gateway",
	Value:   "http://127.0.0.1:8500",
	EnvVars: []string{"BZZ_GATEWAY_URL"},
	Usage:   "base URL of the Swarm HTTP gateway",
}

var TimeoutSecondsFlag = &cli.Int64Flag{
	Name:  "timeout-seconds",
	Value: int64(bzz.DefaultTimeout / time.Second),
	Usage: "seconds to wait for a gateway response",
}

var LogJsonFlag = &cli.BoolFlag{
	Name:    "log-json",
	Value:   false,
	EnvVars: []string{"BZZ_LOG_JSON"},
	Usage:   "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:    "log-debug",
	Value:   false,
	EnvVars: []string{"BZZ_LOG_DEBUG"},
	Usage:   "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}
var LogServiceFlag = &cli.StringFlag{
	Name:  "log-service",
	Value: "bzz",
	Usage: "add 'service' tag to logs",
}

var CommonFlags = []cli.Flag{
	GatewayURLFlag,
	TimeoutSecondsFlag,
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	LogServiceFlag,
}
