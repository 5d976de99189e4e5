package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteEngine_NotReadyUntilDurationSet(t *testing.T) {
	engine := NewRemoteEngine()

	assert.ErrorIs(t, engine.Play(), ErrEngineNotReady)
	assert.ErrorIs(t, engine.SeekTo(3.0), ErrEngineNotReady)
	assert.Empty(t, engine.DrainCommands())

	engine.SetDuration(120)
	require.NoError(t, engine.Play())
	assert.True(t, engine.IsPlaying())
}

func TestRemoteEngine_CommandQueue(t *testing.T) {
	engine := NewRemoteEngine()
	engine.SetDuration(120)

	require.NoError(t, engine.Play())
	require.NoError(t, engine.SeekTo(10.0))
	require.NoError(t, engine.Pause())

	commands := engine.DrainCommands()
	require.Len(t, commands, 3)
	assert.Equal(t, CommandPlay, commands[0].Type)
	assert.Equal(t, CommandSeek, commands[1].Type)
	assert.Equal(t, 10.0, commands[1].Time)
	assert.Equal(t, CommandPause, commands[2].Type)

	assert.Empty(t, engine.DrainCommands(), "drain clears the queue")
}

func TestRemoteEngine_StopResetsPosition(t *testing.T) {
	engine := NewRemoteEngine()
	engine.SetDuration(120)

	engine.ReportPosition(42.0)
	require.NoError(t, engine.Stop())

	assert.Equal(t, 0.0, engine.Position())
	assert.False(t, engine.IsPlaying())
}

func TestRemoteEngine_PositionFanout(t *testing.T) {
	engine := NewRemoteEngine()
	engine.SetDuration(120)

	var got []float64
	sub := engine.SubscribePosition(func(position float64) {
		got = append(got, position)
	})

	engine.ReportPosition(1.0)
	engine.ReportPosition(2.0)

	sub.Unsubscribe()
	engine.ReportPosition(3.0)

	assert.Equal(t, []float64{1.0, 2.0}, got)
	assert.Equal(t, 3.0, engine.Position(), "position still tracked after unsubscribe")

	// Unsubscribing twice is safe
	sub.Unsubscribe()
}

func TestRemoteEngine_SubscriberMayReenterTransport(t *testing.T) {
	engine := NewRemoteEngine()
	engine.SetDuration(120)

	engine.SubscribePosition(func(position float64) {
		if position >= 5.0 {
			_ = engine.SeekTo(1.0)
		}
	})

	engine.ReportPosition(5.0)

	commands := engine.DrainCommands()
	require.Len(t, commands, 1)
	assert.Equal(t, CommandSeek, commands[0].Type)
}
