package playback

import (
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Output is the audio sink a Session plays into. Lock and Unlock guard any
// state the sink's playback goroutine reads, such as a beep.Ctrl.
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

type speakerOutput struct{}

// Speaker returns the process-wide beep speaker as an Output.
func Speaker() Output { return speakerOutput{} }

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}

func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }

func (speakerOutput) Clear() {
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
}

func (speakerOutput) Lock()   { speaker.Lock() }
func (speakerOutput) Unlock() { speaker.Unlock() }
