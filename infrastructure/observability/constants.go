package observability

const (
	MetricPrefix = "gachabot"
)

// Metric names
const (
	// Discord metrics
	CommandsTotal   = MetricPrefix + ".commands.total"
	CommandDuration = MetricPrefix + ".commands.duration"

	// Gacha metrics
	DrawsTotal         = MetricPrefix + ".gacha.draws_total"
	ForcedDrawsTotal   = MetricPrefix + ".gacha.forced_draws_total"
	TokensAwardedTotal = MetricPrefix + ".gacha.tokens_awarded_total"
	ExchangesTotal     = MetricPrefix + ".gacha.exchanges_total"
	RoleGrantFailures  = MetricPrefix + ".gacha.role_grant_failures_total"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"

	// Cache metrics
	PoolCacheLookupsTotal = MetricPrefix + ".cache.pool_lookups_total"
)

// Label keys
const (
	LabelCommand   = "command"
	LabelOutcome   = "outcome"
	LabelRarity    = "rarity"
	LabelEventType = "event_type"
	LabelResult    = "result"
)

// Command outcomes
const (
	OutcomeOK          = "ok"
	OutcomeUserError   = "user_error"
	OutcomeSystemError = "system_error"
)

// Cache lookup results
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)
