// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/mixer"
)

// Manager owns a mixing session, the sounds loaded into it and the backend
// that drives it.
type Manager struct {
	logger   *slog.Logger
	registry *audio.Registry
	backend  device.Backend
	frames   int
	session  *mixer.Session

	mutex   sync.Mutex
	sources map[*mixer.Source]string
	started bool
}

type Option func(*Manager)

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithBackend replaces the default oto device backend.
func WithBackend(b device.Backend) Option {
	return func(m *Manager) {
		if b != nil {
			m.backend = b
		}
	}
}

func WithRegistry(r *audio.Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithBufferFrames sets the hardware buffer size in stereo frames. It is
// rounded up to a multiple of mixer.FrameAlign.
func WithBufferFrames(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.frames = device.AlignFrames(n)
		}
	}
}

// DefaultRegistry knows every format this module can decode.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	return r
}

func New(opts ...Option) *Manager {
	m := &Manager{
		logger:  slog.Default(),
		frames:  device.DefaultFrames,
		sources: make(map[*mixer.Source]string),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.registry == nil {
		m.registry = DefaultRegistry()
	}
	if m.backend == nil {
		m.backend = device.NewOto(m.frames, device.DefaultBuffers)
	}
	m.session = mixer.NewSession(m.frames)
	return m
}

// Session exposes the mixing session, for backends driven by the caller.
func (m *Manager) Session() *mixer.Session { return m.session }

// Start connects the session to the backend.
func (m *Manager) Start() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.started {
		return device.ErrAlreadyStarted
	}
	if err := m.backend.Start(m.session); err != nil {
		m.logger.Error("audio output failed to start", "error", err)
		return fmt.Errorf("starting audio output: %w", err)
	}

	m.started = true
	m.logger.Info("audio output started",
		"rate", mixer.OutputRate,
		"channels", mixer.OutputChannels,
		"frames", m.frames,
		"latency", device.Latency(m.frames, device.DefaultBuffers))
	return nil
}

// Load decodes the file at path, picking the decoder from its extension,
// and adds the sound to the session stopped. Call Play on the result.
// Failures are *audio.LoadError values.
func (m *Manager) Load(path string, loop mixer.LoopPolicy) (*mixer.Source, error) {
	dec, format, ok := m.registry.ForPath(path)
	if !ok {
		return nil, m.loadFailed(path, fmt.Errorf("%w: %q", audio.ErrUnknownFormat, format))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, m.loadFailed(path, fmt.Errorf("%w: %w", audio.ErrFile, err))
	}

	return m.decode(path, dec, data, loop)
}

// LoadReader is Load for data that is not in a file. name is only used
// for logging and errors. r is read to the end before decoding; a read
// failure is a file error.
func (m *Manager) LoadReader(name, format string, r io.Reader, loop mixer.LoopPolicy) (*mixer.Source, error) {
	dec, ok := m.registry.Get(format)
	if !ok {
		return nil, m.loadFailed(name, fmt.Errorf("%w: %q", audio.ErrUnknownFormat, format))
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, m.loadFailed(name, fmt.Errorf("%w: %w", audio.ErrFile, err))
	}

	return m.decode(name, dec, data, loop)
}

func (m *Manager) decode(name string, dec audio.Decoder, data []byte, loop mixer.LoopPolicy) (*mixer.Source, error) {
	pcm, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, m.loadFailed(name, err)
	}

	src, err := mixer.NewSource(pcm, loop)
	if err != nil {
		return nil, m.loadFailed(name, err)
	}

	m.logger.Info("audio file loaded",
		"path", name,
		"rate", pcm.SampleRate,
		"channels", pcm.Channels,
		"duration", pcm.Duration(),
		"loop", loop)

	m.add(name, src)
	return src, nil
}

// AddStream adds a generated source to the session, stopped.
func (m *Manager) AddStream(name string, st audio.Streamer) (*mixer.Source, error) {
	src, err := mixer.NewStreamSource(st)
	if err != nil {
		return nil, m.loadFailed(name, err)
	}

	m.logger.Info("stream added", "name", name, "rate", st.SampleRate(), "channels", st.Channels())
	m.add(name, src)
	return src, nil
}

func (m *Manager) add(name string, src *mixer.Source) {
	m.mutex.Lock()
	m.sources[src] = name
	m.mutex.Unlock()

	m.session.Add(src)
}

func (m *Manager) loadFailed(name string, err error) error {
	err = audio.Classify(name, err)
	m.logger.Error("audio file failed to load", "path", name, "error", err)
	return err
}

// Free removes src from the session. The source is released at the start
// of the next cycle and must not be used afterwards.
func (m *Manager) Free(src *mixer.Source) {
	m.mutex.Lock()
	name, ok := m.sources[src]
	delete(m.sources, src)
	m.mutex.Unlock()

	if !ok {
		return
	}
	m.session.Remove(src)
	m.logger.Debug("audio freed", "path", name)
}

// Len is the number of sounds loaded and not yet freed.
func (m *Manager) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return len(m.sources)
}

// Close stops the backend and frees every source.
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var err error
	if m.started {
		err = m.backend.Close()
		m.started = false
		m.logger.Info("audio output stopped")
	}

	for src := range m.sources {
		m.session.Remove(src)
	}
	clear(m.sources)

	// nothing drives the session any more
	m.session.Flush()
	m.session.ResetContinuity()

	if err != nil {
		return fmt.Errorf("stopping audio output: %w", err)
	}
	return nil
}
