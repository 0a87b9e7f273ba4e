package audio

import (
	"os/exec"
)

// backendCandidates in priority order: pacat > pw-cat > aplay > play (sox) > ffplay
var backendCandidates = []BackendConfig{
	{Type: BackendPulse, Name: "pacat", Args: []string{
		"--raw", "--format=s16le", "--rate=44100", "--channels=2", "--latency-msec=50", "--playback",
	}},
	{Type: BackendPipeWire, Name: "pw-cat", Args: []string{
		"--playback", "--format=s16", "--rate=44100", "--channels=2", "--latency=50ms", "-",
	}},
	{Type: BackendALSA, Name: "aplay", Args: []string{
		"-t", "raw", "-f", "S16_LE", "-r", "44100", "-c", "2", "-q",
	}},
	{Type: BackendSoX, Name: "play", Args: []string{
		"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", "44100", "-", "-d", "-q",
	}},
	{Type: BackendFFplay, Name: "ffplay", Args: []string{
		"-nodisp", "-autoexit", "-f", "s16le", "-ac", "2", "-ar", "44100",
		"-probesize", "32", "-analyzeduration", "0", "-i", "pipe:0", "-loglevel", "quiet",
	}},
}

// DetectBackend searches PATH for a playback tool accepting raw s16le stereo on stdin
func DetectBackend() (*BackendConfig, error) {
	return detectBackend(exec.LookPath)
}

func detectBackend(lookPath func(string) (string, error)) (*BackendConfig, error) {
	for _, c := range backendCandidates {
		path, err := lookPath(c.Name)
		if err != nil {
			continue
		}
		b := c
		b.Path = path
		b.Args = append([]string(nil), c.Args...)
		return &b, nil
	}
	return nil, ErrNoAudioBackend
}
