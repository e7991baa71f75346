package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "test_db",
}

var defaultLedger = Ledger{
	ConfirmTimeout: 20 * time.Second,
	PollInterval:   time.Second,
	ReadRetries:    3,
	RetryBaseDelay: 200 * time.Millisecond,
	RetryMaxDelay:  2 * time.Second,
}

var defaultLifecycle = Lifecycle{
	OperationTimeout: 2 * time.Minute,
}

var defaultKafka = Kafka{
	GroupID: "pickup-lifecycle-worker",
	Topic:   "pickup.lifecycle",
}

var defaultRateLimit = RateLimit{
	Enabled: true,
	Rate:    10,
	Burst:   20,
	TTL:     5 * time.Minute,
	MaxKeys: 10000,
}

var defaultPprof = Pprof{
	Addr: "127.0.0.1:6060",
}

var defaultMetrics = Metrics{
	AggregateInterval: time.Minute,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultLedger returns the default ledger settings. Sync stays disabled until
// the endpoint, key and contract addresses are provided.
func DefaultLedger() Ledger {
	return defaultLedger
}

// DefaultLifecycle returns the default orchestrator settings.
func DefaultLifecycle() Lifecycle {
	return defaultLifecycle
}

// DefaultKafka returns the default consumer settings; brokers are empty so the
// consumer stays off unless configured.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultPprof returns the default pprof settings.
func DefaultPprof() Pprof {
	return defaultPprof
}

// DefaultMetrics returns the default aggregation settings.
func DefaultMetrics() Metrics {
	return defaultMetrics
}
