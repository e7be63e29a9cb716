package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"sanavoz/internal/ports"
)

// FFMPEGCapture records fixed-duration microphone clips using ffmpeg and
// returns normalized mono samples.
type FFMPEGCapture struct {
	command string
}

func NewFFMPEGCapture(command string) *FFMPEGCapture {
	if command == "" {
		command = "ffmpeg"
	}
	return &FFMPEGCapture{command: command}
}

// Record captures s16le PCM for the given duration and converts it to
// float32 samples in [-1.0, 1.0]. A clean run with no audio yields an
// empty slice, not an error.
func (c *FFMPEGCapture) Record(ctx context.Context, cfg ports.AudioConfig, duration time.Duration) ([]float32, error) {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 16000
	}
	if cfg.Channels <= 0 {
		cfg.Channels = 1
	}
	if cfg.InputFormat == "" {
		cfg.InputFormat = "pulse"
	}
	if cfg.InputDevice == "" {
		cfg.InputDevice = "default"
	}
	if duration <= 0 {
		duration = 3 * time.Second
	}

	args := []string{
		"-nostdin",
		"-hide_banner",
		"-loglevel", "warning",
		"-f", cfg.InputFormat,
		"-i", cfg.InputDevice,
		"-t", strconv.FormatFloat(duration.Seconds(), 'f', -1, 64),
		"-ac", strconv.Itoa(cfg.Channels),
		"-ar", strconv.Itoa(cfg.SampleRate),
		"-f", "s16le",
		"-",
	}

	cmd := exec.CommandContext(ctx, c.command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("ffmpeg capture failed: %w (%s)", err, bytes.TrimSpace(stderr.Bytes()))
	}

	return decodePCM16(stdout.Bytes()), nil
}

// decodePCM16 converts little-endian 16-bit PCM into normalized float32
// samples. A trailing odd byte is dropped.
func decodePCM16(pcm []byte) []float32 {
	samples := make([]float32, 0, len(pcm)/2)
	for i := 0; i+1 < len(pcm); i += 2 {
		v := int16(binary.LittleEndian.Uint16(pcm[i:]))
		samples = append(samples, float32(v)/32768.0)
	}
	return samples
}
