package constants

import (
	"os"
	"time"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetTable() string {
	return getenv("VIVECHORD_TABLE", DefaultTable)
}

func GetListenAddr() string {
	return getenv("VIVECHORD_LISTEN", DefaultListenAddr)
}

// GetHistoryPath returns "" when chord history is disabled.
func GetHistoryPath() string {
	return os.Getenv("VIVECHORD_HISTORY")
}

func GetLogLevel() string {
	return getenv("VIVECHORD_LOG_LEVEL", "info")
}

const (
	DefaultTable      = "pie3"
	DefaultListenAddr = ":8080"
	DefaultDevices    = 2

	// haptic pulse for a played chord, in microseconds
	DefaultHapticMicros = 1000

	// MIDI note length when chords are played to a MIDI port
	DefaultMidiHold = 80 * time.Millisecond

	// debounce for chord table reloads
	ReloadDelay = 100 * time.Millisecond
)
