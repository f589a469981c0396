package scoring

// WakeLock keeps the scoring device's screen awake while points are being
// entered. Implementations must tolerate repeated Acquire and Release
// calls; failures are a lost nicety, never an error the operator sees.
type WakeLock interface {
	Acquire() error
	Release()
}

// NopWakeLock is the default on hosts with no screen to keep awake.
type NopWakeLock struct{}

func (NopWakeLock) Acquire() error { return nil }
func (NopWakeLock) Release()       {}
