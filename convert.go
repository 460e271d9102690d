// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/mixer"
)

// ConvertToOutput plays pcm once through a private session and returns it
// at the output format: 44100 Hz interleaved stereo, upsampled exactly the
// way it would sound when mixed. The result holds pcm.Frames() times the
// scale factor frames.
//
// Example:
//
//	pcm, _ := wav.Decoder{}.Decode(file)
//	stereo, err := audmix.ConvertToOutput(pcm)
//	if err != nil {
//	    return err
//	}
//	err = wav.WriteWAV16(out, mixer.OutputRate, mixer.OutputChannels, stereo)
func ConvertToOutput(pcm *audio.PCM) ([]int16, error) {
	src, err := mixer.NewSource(pcm, mixer.PlayOnce)
	if err != nil {
		return nil, fmt.Errorf("converting to output format: %w", err)
	}
	src.Play()

	session := mixer.NewSession(device.DefaultFrames)
	session.Add(src)

	offline := device.NewOffline(device.DefaultFrames)
	if err := offline.Start(session); err != nil {
		return nil, err
	}
	defer offline.Close()

	frames := pcm.Frames() * src.ScaleFactor()
	samples, err := offline.Render((frames + device.DefaultFrames - 1) / device.DefaultFrames)
	if err != nil {
		return nil, err
	}
	return samples[:frames*mixer.OutputChannels], nil
}
