//go:build headless

// SPDX-License-Identifier: EPL-2.0

package device

// Oto is unavailable in headless builds; Start always fails.
type Oto struct{}

func NewOto(frames, buffers int) *Oto { return &Oto{} }

func (o *Oto) Start(f Filler) error { return ErrNoDevice }
func (o *Oto) Err() error           { return nil }
func (o *Oto) Close() error         { return nil }
