package media

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeDuration extracts the media duration in seconds from an uploaded
// file. ffprobe only reads from paths, so the buffered upload is spooled
// to a temp file for the duration of the probe. Callers treat any error
// as non-fatal: an upload without a duration is still a valid upload.
func ProbeDuration(data []byte) (float64, error) {
	tmp, err := os.CreateTemp("", "probe-*.bin")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}

	probeJSON, err := ffmpeg.Probe(tmp.Name())
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}
	return parseDuration(probeJSON)
}

func parseDuration(probeJSON string) (float64, error) {
	var probe struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(probeJSON), &probe); err != nil {
		return 0, err
	}
	if probe.Format.Duration == "" {
		return 0, errors.New("probe output has no duration")
	}
	d, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("non-positive duration %v", d)
	}
	return d, nil
}
