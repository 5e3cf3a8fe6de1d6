package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr string

	// MaxAttempts is the default wrong-guess budget per turn, used when a
	// room is created without an explicit value.
	MaxAttempts int

	// SettleInterval is how long a concluded turn's result stays visible
	// before the next turn/round (or the match result) is broadcast.
	SettleInterval time.Duration

	// HostGracePeriod is how long a room survives after the host drops
	// while no guest has ever joined.
	HostGracePeriod time.Duration

	SweepInterval time.Duration
	MaxRoomAge    time.Duration
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getenvStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	return Config{
		HTTPAddr:        getenvStr("HTTP_ADDR", ":3000"),
		MaxAttempts:     getenvInt("MAX_ATTEMPTS", 6),
		SettleInterval:  getenvDuration("SETTLE_INTERVAL", 2*time.Second),
		HostGracePeriod: getenvDuration("HOST_GRACE_PERIOD", 2*time.Minute),
		SweepInterval:   getenvDuration("SWEEP_INTERVAL", 60*time.Second),
		MaxRoomAge:      getenvDuration("MAX_ROOM_AGE", 30*time.Minute),
	}
}
