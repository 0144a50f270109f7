//go:build !cgo && !portaudio && !beep

package audio

const Backend = "none"

// Open always fails: this build has no audio output.
func Open(sampleRate int) (Device, error) {
	return nil, ErrUnavailable
}
