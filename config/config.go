package config

import (
	"fmt"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/chinmay1088/stellarpay/api"
	"github.com/chinmay1088/stellarpay/chains/stellar"
)

const (
	// NetworkKey is the default network selector, either "main" or "testnet"
	NetworkKey = "NETWORK"
	// HorizonTimeoutKey are the milliseconds to wait for horizon responses before timeouts
	HorizonTimeoutKey = "HORIZON_TIMEOUT"
	// TxTimeoutKey is the validity window in seconds of submitted transactions
	TxTimeoutKey = "TX_TIMEOUT"
	// FeePercentileCapKey caps estimated fees, in stroops. 0 disables the cap
	FeePercentileCapKey = "FEE_PERCENTILE_CAP"
	// DefaultMemoKey is the text memo attached to payments that carry none
	DefaultMemoKey = "DEFAULT_MEMO"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// ServeAddrKey is the listen address of the HTTP gateway
	ServeAddrKey = "SERVE_ADDR"
)

var vip *viper.Viper

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("STELLARPAY")
	vip.AutomaticEnv()

	vip.SetDefault(NetworkKey, api.NetworkTestnet)
	vip.SetDefault(HorizonTimeoutKey, 30000)
	vip.SetDefault(TxTimeoutKey, 180)
	vip.SetDefault(FeePercentileCapKey, 0)
	vip.SetDefault(DefaultMemoKey, "")
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(ServeAddrKey, "127.0.0.1:9090")
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetInt64 ...
func GetInt64(key string) int64 {
	return vip.GetInt64(key)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

// GetNetwork returns the configured network selector.
func GetNetwork() string {
	return GetString(NetworkKey)
}

// GetLogLevel returns the configured logrus level.
func GetLogLevel() log.Level {
	return log.Level(GetInt(LogLevelKey))
}

// ClientConfig builds the api client configuration from the current values.
func ClientConfig() api.Config {
	return api.Config{
		HTTPClient: &http.Client{
			Timeout: time.Duration(GetInt(HorizonTimeoutKey)) * time.Millisecond,
		},
		FeePercentileCap: GetInt64(FeePercentileCapKey),
		TxTimeout:        time.Duration(GetInt(TxTimeoutKey)) * time.Second,
		DefaultMemo:      GetString(DefaultMemoKey),
	}
}

// Validate checks the current values.
func Validate() error {
	networkName := GetString(NetworkKey)
	if networkName != api.NetworkMain && networkName != api.NetworkTestnet {
		return fmt.Errorf(
			"network must be either '%s' or '%s'",
			api.NetworkMain,
			api.NetworkTestnet,
		)
	}

	if GetInt(HorizonTimeoutKey) <= 0 {
		return fmt.Errorf("horizon timeout must be a positive number of milliseconds")
	}
	if GetInt(TxTimeoutKey) <= 0 {
		return fmt.Errorf("transaction timeout must be a positive number of seconds")
	}
	if GetInt64(FeePercentileCapKey) < 0 {
		return fmt.Errorf("fee percentile cap must not be a negative number")
	}
	if len(GetString(DefaultMemoKey)) > stellar.MaxMemoBytes {
		return fmt.Errorf("default memo must be at most %d bytes", stellar.MaxMemoBytes)
	}

	level := GetInt(LogLevelKey)
	if level < int(log.PanicLevel) || level > int(log.TraceLevel) {
		return fmt.Errorf("log level must be in range [%d, %d]", log.PanicLevel, log.TraceLevel)
	}

	if _, _, err := net.SplitHostPort(GetString(ServeAddrKey)); err != nil {
		return fmt.Errorf("serve address is not a valid host:port: %s", err)
	}
	return nil
}
