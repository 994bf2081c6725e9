package ui

import (
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// 音频只初始化一次
var (
	audioOnce   sync.Once
	soundBuffer *beep.Buffer
	soundVolume float64 = 1.0
)

// initAudio 加载倒计时结束提示音并初始化扬声器。
func initAudio(path string, volume float64) error {
	var initErr error
	audioOnce.Do(func() {
		f, err := os.Open(path)
		if err != nil {
			initErr = err
			return
		}
		defer f.Close()

		streamer, format, err := wav.Decode(f)
		if err != nil {
			initErr = err
			return
		}
		defer streamer.Close()

		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			initErr = err
			return
		}

		buffer := beep.NewBuffer(format)
		buffer.Append(streamer)
		soundBuffer = buffer
		soundVolume = volume
	})
	return initErr
}

// playCompleteSound 播放倒计时结束音效。
func playCompleteSound() {
	if soundBuffer == nil {
		return
	}
	streamer := soundBuffer.Streamer(0, soundBuffer.Len())

	// 音量控制器
	volumeCtrl := &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   soundVolume,
		Silent:   false,
	}

	speaker.Play(volumeCtrl)
}
