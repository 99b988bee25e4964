// Package ffmpeg locates the ffmpeg and ffprobe executables used by the
// rest of the tool. Explicit env overrides win over PATH lookup.
package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
)

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath BinaryPaths
)

func Ensure() (BinaryPaths, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = ensure()
	})
	return ensurePath, ensureErr
}

func FFmpegPath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func FFprobePath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func ensure() (BinaryPaths, error) {
	ffmpegPath, err := locate("ffmpeg", "SUBCUT_FFMPEG_PATH")
	if err != nil {
		return BinaryPaths{}, err
	}
	ffprobePath, err := locate("ffprobe", "SUBCUT_FFPROBE_PATH")
	if err != nil {
		return BinaryPaths{}, err
	}
	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}

func locate(binary, envVar string) (string, error) {
	if path := os.Getenv(envVar); path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%s points to %s: %w", envVar, path, err)
		}
		return path, nil
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf(
			"%s not found in PATH (set %s to override): %w",
			binary,
			envVar,
			err,
		)
	}
	return path, nil
}
