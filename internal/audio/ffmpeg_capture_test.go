package audio

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"sanavoz/internal/ports"
)

func TestDecodePCM16(t *testing.T) {
	t.Parallel()

	// 0x8000 = -32768, 0x7FFF = 32767, little endian.
	samples := decodePCM16([]byte{0x00, 0x80, 0xFF, 0x7F, 0x00, 0x00})
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	if samples[0] != -1.0 {
		t.Fatalf("expected full-scale negative, got %f", samples[0])
	}
	if samples[1] < 0.999 || samples[1] > 1.0 {
		t.Fatalf("expected near full-scale positive, got %f", samples[1])
	}
	if samples[2] != 0 {
		t.Fatalf("expected silence, got %f", samples[2])
	}
}

func TestDecodePCM16DropsTrailingByte(t *testing.T) {
	t.Parallel()

	if got := decodePCM16([]byte{0x00, 0x00, 0x12}); len(got) != 1 {
		t.Fatalf("trailing odd byte must be dropped, got %d samples", len(got))
	}
	if got := decodePCM16(nil); len(got) != 0 {
		t.Fatalf("empty input must yield no samples, got %d", len(got))
	}
}

func writeFakeRecorder(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake recorder script requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("writing fake recorder: %v", err)
	}
	return path
}

func TestRecordDecodesCommandOutput(t *testing.T) {
	t.Parallel()

	// Two samples: 0x0000 and 0x7FFF.
	capture := NewFFMPEGCapture(writeFakeRecorder(t, `printf '\000\000\377\177'`))

	samples, err := capture.Record(context.Background(), ports.AudioConfig{}, time.Second)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0] != 0 {
		t.Fatalf("expected silence, got %f", samples[0])
	}
	if samples[1] < 0.999 {
		t.Fatalf("expected near full-scale sample, got %f", samples[1])
	}
}

func TestRecordEmptyOutputIsNotAnError(t *testing.T) {
	t.Parallel()

	capture := NewFFMPEGCapture(writeFakeRecorder(t, `exit 0`))

	samples, err := capture.Record(context.Background(), ports.AudioConfig{}, time.Second)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if len(samples) != 0 {
		t.Fatalf("expected no samples, got %d", len(samples))
	}
}

func TestRecordSurfacesCommandFailure(t *testing.T) {
	t.Parallel()

	capture := NewFFMPEGCapture(writeFakeRecorder(t, `echo 'no such device' >&2; exit 1`))

	_, err := capture.Record(context.Background(), ports.AudioConfig{}, time.Second)
	if err == nil {
		t.Fatalf("expected error from failing recorder")
	}
	if !strings.Contains(err.Error(), "no such device") {
		t.Fatalf("stderr must be surfaced: %v", err)
	}
}

func TestRecordHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	capture := NewFFMPEGCapture(writeFakeRecorder(t, `sleep 10`))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := capture.Record(ctx, ports.AudioConfig{}, time.Second)
	if err != context.DeadlineExceeded {
		t.Fatalf("expected deadline error, got %v", err)
	}
}
