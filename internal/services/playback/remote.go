package playback

import "sync"

// CommandType identifies a transport command queued for the remote client
type CommandType string

const (
	CommandPlay  CommandType = "play"
	CommandPause CommandType = "pause"
	CommandStop  CommandType = "stop"
	CommandSeek  CommandType = "seek"
)

// Command is one transport instruction for the client-side player
type Command struct {
	Type CommandType `json:"type"`
	// Time carries the target position in seconds for seek commands
	Time float64 `json:"time,omitempty"`
}

// RemoteEngine implements Engine for a browser-hosted player. The server
// cannot touch the client's audio element directly, so transport calls are
// queued as commands the client drains on its next poll, and the client
// reports its playhead back through ReportPosition, which fans out to
// position subscriptions. The coordinator never knows the engine is remote.
type RemoteEngine struct {
	mu       sync.Mutex
	duration float64
	playing  bool
	position float64
	pending  []Command

	subs   map[int]func(float64)
	nextID int
}

// NewRemoteEngine creates an engine with no audio loaded yet
func NewRemoteEngine() *RemoteEngine {
	return &RemoteEngine{subs: make(map[int]func(float64))}
}

// SetDuration marks the engine ready with the loaded audio's length
func (e *RemoteEngine) SetDuration(seconds float64) {
	e.mu.Lock()
	e.duration = seconds
	e.mu.Unlock()
}

// Duration returns the loaded audio's length in seconds, 0 when not ready
func (e *RemoteEngine) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration
}

// IsPlaying reports the last play state the client confirmed or was told
func (e *RemoteEngine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// Play queues a play command
func (e *RemoteEngine) Play() error {
	return e.enqueue(Command{Type: CommandPlay}, func() { e.playing = true })
}

// Pause queues a pause command
func (e *RemoteEngine) Pause() error {
	return e.enqueue(Command{Type: CommandPause}, func() { e.playing = false })
}

// Stop queues a stop command and resets the playhead
func (e *RemoteEngine) Stop() error {
	return e.enqueue(Command{Type: CommandStop}, func() {
		e.playing = false
		e.position = 0
	})
}

// SeekTo queues a seek command to an absolute time in seconds
func (e *RemoteEngine) SeekTo(seconds float64) error {
	return e.enqueue(Command{Type: CommandSeek, Time: seconds}, func() {
		e.position = seconds
	})
}

func (e *RemoteEngine) enqueue(cmd Command, apply func()) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.duration == 0 {
		return ErrEngineNotReady
	}

	apply()
	e.pending = append(e.pending, cmd)
	return nil
}

// DrainCommands returns and clears the queued transport commands, in order
func (e *RemoteEngine) DrainCommands() []Command {
	e.mu.Lock()
	defer e.mu.Unlock()

	drained := e.pending
	e.pending = nil
	return drained
}

// ReportPosition records the client's playhead and notifies subscribers.
// Callbacks run outside the lock: a subscriber (the loop watcher) may call
// straight back into SeekTo.
func (e *RemoteEngine) ReportPosition(seconds float64) {
	e.mu.Lock()
	e.position = seconds
	callbacks := make([]func(float64), 0, len(e.subs))
	for _, fn := range e.subs {
		callbacks = append(callbacks, fn)
	}
	e.mu.Unlock()

	for _, fn := range callbacks {
		fn(seconds)
	}
}

// Position returns the last reported playhead in seconds
func (e *RemoteEngine) Position() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position
}

// SubscribePosition registers a recurring position callback
func (e *RemoteEngine) SubscribePosition(fn func(position float64)) Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	return &remoteSubscription{engine: e, id: id}
}

type remoteSubscription struct {
	engine *RemoteEngine
	id     int
	once   sync.Once
}

func (s *remoteSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.engine.mu.Lock()
		delete(s.engine.subs, s.id)
		s.engine.mu.Unlock()
	})
}
