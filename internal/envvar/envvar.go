package envvar

const (
	// ModelHandlerEnv is the environment variable used to determine the environment.
	ModelHandlerEnv = "MODELHANDLER_ENV"

	// ModelHandlerModelDir is the environment variable that overrides the artifact directory.
	ModelHandlerModelDir = "MODELHANDLER_MODEL_DIR"

	// ModelHandlerServerHTTPPort is the environment variable used to determine the HTTP port.
	ModelHandlerServerHTTPPort = "MODELHANDLER_SERVER_HTTP_PORT"

	// ModelHandlerServerGRPCPort is the environment variable used to determine the gRPC port.
	ModelHandlerServerGRPCPort = "MODELHANDLER_SERVER_GRPC_PORT"

	// ModelHandlerLogLevel is the environment variable that overrides the configured log level.
	ModelHandlerLogLevel = "MODELHANDLER_LOG_LEVEL"
)
