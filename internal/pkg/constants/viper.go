package constants

const (
	ViperServerAddrKey         = "server.addr"
	ViperServerAllowOriginsKey = "server.allow_origins"
	ViperDatabaseDSNKey        = "database.dsn"
	ViperStoreMaxRetriesKey    = "store.max_retries"
	ViperStoreRetryDelayKey    = "store.retry_delay"

	ViperReportingCurrencyKey = "engine.reporting_currency"
	ViperHorizonStartYearKey  = "engine.horizon_start_year"
	ViperHorizonYearsKey      = "engine.horizon_years"

	ViperRatingWeightsKey = "rating.weights"
	ViperRatingBandsKey   = "rating.bands"

	ViperMarketURLKey        = "market.url"
	ViperMarketMaxRetriesKey = "market.max_retries"

	ViperLogLevelKey  = "log.level"
	ViperLogFormatKey = "log.format"
)

const EnvPrefix = "AGRO"
