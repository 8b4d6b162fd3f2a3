package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyDBType string = "PRIORIBIN_DB_TYPE"
	EnvKeyDBPath string = "PRIORIBIN_DB_PATH"
	EnvKeyDBDsn  string = "PRIORIBIN_DB_DSN"

	EnvKeyHttpHostPort string = "PRIORIBIN_HTTP_HOST_PORT"
	EnvKeyGrpcHostPort string = "PRIORIBIN_GRPC_HOST_PORT"

	EnvKeyDefaultRate  string = "PRIORIBIN_DEFAULT_RATE"
	EnvKeyDefaultBurst string = "PRIORIBIN_DEFAULT_BURST"

	EnvKeyActiveWindow string = "PRIORIBIN_ACTIVE_WINDOW"
	EnvKeyCorsOrigins  string = "PRIORIBIN_CORS_ORIGINS"
	EnvKeyLogDir       string = "PRIORIBIN_LOG_DIR"

	LoggerNameWasteCore     string = "waste_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGrpcServer    string = "grpc_server"
	LoggerNameLiveHub       string = "live_hub"
	LoggerFieldCategory     string = "category"
	LoggerCategoryRegistry  string = "registry"
	LoggerCategoryEventLog  string = "eventlog"
	LoggerCategoryTracker   string = "tracker"
)
