package wrappers

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
)

// frameDelay is the delay between successive frames of a recorded
// video, in hundredths of a second.
const frameDelay int = 5

// Video wraps an environment and records the frames of the first
// complete episode played in it. Closing the Video assembles the
// recorded frames into an animated GIF on disk.
//
// Video is a recording wrapper. Closing it writes the video file but
// leaves the wrapped environment open, so a single underlying
// environment can be recorded repeatedly with fresh Video wrappers.
type Video struct {
	environment.Environment
	framer environment.Framer
	path   string

	frames    []image.Image
	recording bool
	recorded  bool
}

// NewVideo creates and returns a new *Video wrapping env, which must
// implement environment.Framer. The recorded video is written to the
// file path when the Video is closed.
func NewVideo(env environment.Environment, path string) (*Video, error) {
	framer, ok := env.(environment.Framer)
	if !ok {
		return nil, fmt.Errorf("video: environment %T cannot draw frames",
			env)
	}

	return &Video{Environment: env, framer: framer, path: path}, nil
}

// Reset resets the wrapped environment. The first Reset begins
// recording; a Reset before the recorded episode completes restarts
// the recording so that only a single complete episode is kept.
func (v *Video) Reset() (environment.Observation, error) {
	obs, err := v.Environment.Reset()
	if err != nil {
		return nil, err
	}

	if !v.recorded {
		v.recording = true
		v.frames = v.frames[:0]
		v.frames = append(v.frames, v.framer.Frame())
	}
	return obs, nil
}

// Step takes a single action in the wrapped environment, capturing a
// frame while recording. Recording stops once the recorded episode
// ends.
func (v *Video) Step(action int) (environment.Observation, float64,
	bool, error) {
	obs, reward, done, err := v.Environment.Step(action)
	if err != nil {
		return obs, reward, done, err
	}

	if v.recording {
		v.frames = append(v.frames, v.framer.Frame())
		if done {
			v.recording = false
			v.recorded = true
		}
	}

	return obs, reward, done, nil
}

// Render renders the wrapped environment if it supports rendering.
func (v *Video) Render() {
	if renderer, ok := v.Environment.(environment.Renderer); ok {
		renderer.Render()
	}
}

// Close assembles the recorded frames into a GIF and writes it to the
// Video's path. Closing a Video that recorded no frames writes
// nothing. If the Video wraps another recording wrapper, that wrapper
// is closed too; the underlying environment is always left open.
func (v *Video) Close() error {
	if err := v.write(); err != nil {
		return err
	}

	if _, ok := v.Environment.(environment.Unwrapper); ok {
		if err := v.Environment.Close(); err != nil {
			return fmt.Errorf("close: %v", err)
		}
	}
	return nil
}

// Unwrap returns the wrapped environment.
func (v *Video) Unwrap() environment.Environment {
	return v.Environment
}

// write encodes the recorded frames as an animated GIF at the Video's
// path.
func (v *Video) write() error {
	if len(v.frames) == 0 {
		return nil
	}

	anim := &gif.GIF{}
	for _, frame := range v.frames {
		bounds := frame.Bounds()
		paletted := image.NewPaletted(bounds, palette.Plan9)
		draw.Draw(paletted, bounds, frame, bounds.Min, draw.Src)

		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, frameDelay)
	}

	file, err := os.Create(v.path)
	if err != nil {
		return fmt.Errorf("close: could not create video file: %v", err)
	}
	defer file.Close()

	if err := gif.EncodeAll(file, anim); err != nil {
		return fmt.Errorf("close: could not encode video: %v", err)
	}
	return nil
}
