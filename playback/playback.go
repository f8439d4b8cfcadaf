// SPDX-License-Identifier: EPL-2.0

// Package playback mirrors the play/pause state of an audio engine.
package playback

import (
	"errors"
	"fmt"
	"sync"
)

// ErrEngineUnavailable is returned when there is no engine to drive.
var ErrEngineUnavailable = errors.New("audio engine unavailable")

// Player is the part of an engine the controller drives.
type Player interface {
	Play() error
	Pause() error
	Seek(seconds float64) error
}

// Controller keeps a local playing flag in step with a Player. The flag
// only changes after the engine accepted the command, and a finish
// notification always clears it.
type Controller struct {
	player Player

	mtx     sync.Mutex
	playing bool
}

func NewController(p Player) *Controller {
	return &Controller{player: p}
}

func (c *Controller) Playing() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.playing
}

// Toggle starts or pauses playback and returns the new state. On engine
// failure the state is left as it was.
func (c *Controller) Toggle() (bool, error) {
	if c.player == nil {
		return false, ErrEngineUnavailable
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.playing {
		if err := c.player.Pause(); err != nil {
			return c.playing, fmt.Errorf("pause: %w", err)
		}
		c.playing = false
		return false, nil
	}

	if err := c.player.Play(); err != nil {
		return c.playing, fmt.Errorf("play: %w", err)
	}
	c.playing = true
	return true, nil
}

// Seek moves the play head without changing the playing state.
func (c *Controller) Seek(seconds float64) error {
	if c.player == nil {
		return ErrEngineUnavailable
	}
	if err := c.player.Seek(seconds); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	return nil
}

// Finished records that the engine reached the end of the track.
func (c *Controller) Finished() {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.playing = false
}

// Stop pauses the engine if needed and clears the playing state. The
// state is cleared even if the engine fails to pause.
func (c *Controller) Stop() error {
	if c.player == nil {
		return ErrEngineUnavailable
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	if !c.playing {
		return nil
	}
	c.playing = false

	if err := c.player.Pause(); err != nil {
		return fmt.Errorf("pause: %w", err)
	}
	return nil
}
