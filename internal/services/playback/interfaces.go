package playback

import "errors"

// ErrEngineNotReady is returned by engine operations before audio is loaded
var ErrEngineNotReady = errors.New("audio engine not ready")

// Engine is the external audio transport the coordinator drives. Loading,
// decoding and rendering live behind this interface; the coordinator only
// issues transport commands and consumes position updates.
type Engine interface {
	Play() error
	Pause() error
	Stop() error
	// SeekTo moves the playhead to an absolute time in seconds
	SeekTo(seconds float64) error
	// Duration returns the loaded audio's length in seconds, 0 when not ready
	Duration() float64
	IsPlaying() bool
	// SubscribePosition registers a recurring position callback and returns
	// an explicit handle. Callers must release the handle on every exit path;
	// a leaked subscription keeps reseeking a session that already stopped.
	SubscribePosition(fn func(position float64)) Subscription
}

// Subscription is a handle to a registered position callback
type Subscription interface {
	// Unsubscribe releases the callback. Safe to call more than once.
	Unsubscribe()
}
