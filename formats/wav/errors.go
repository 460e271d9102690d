package wav

import (
	"fmt"

	"github.com/ik5/audmix/audio"
)

var (
	ErrNotWavFile            = fmt.Errorf("%w: not a WAV file", audio.ErrDecode)
	ErrOnlyPCM16bitSupported = fmt.Errorf("%w: only PCM 16-bit supported", audio.ErrDecode)
	ErrUnsupportedWavChunks  = fmt.Errorf("%w: unsupported WAV chunks", audio.ErrDecode)
)
