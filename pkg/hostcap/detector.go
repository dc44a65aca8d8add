// Package hostcap classifies the running host into closed capability
// categories so recipes can pick sensible defaults without user input.
// Classification is best-effort substring matching over raw enumeration
// text: unrecognized hosts map to the Unknown member, never to an error.
package hostcap

import (
	"strings"

	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/logging"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/types"
)

// GPUVendor is the detected GPU vendor category.
type GPUVendor string

const (
	VendorNVIDIA  GPUVendor = "nvidia"
	VendorAMD     GPUVendor = "amd"
	VendorIntel   GPUVendor = "intel"
	VendorUnknown GPUVendor = "unknown"
)

// AudioServer is the detected running audio server category.
type AudioServer string

const (
	AudioPipeWire   AudioServer = "pipewire"
	AudioPulseAudio AudioServer = "pulseaudio"
	AudioUnknown    AudioServer = "unknown"
)

// Capabilities is one fresh snapshot of the host. Never cached across runs.
type Capabilities struct {
	GPU   GPUVendor
	Audio AudioServer
}

// gpuPatterns maps lspci substrings to vendors. Order matters: hybrid
// laptops list both an integrated and a discrete controller, and the
// discrete one is the one that needs a driver choice.
var gpuPatterns = []struct {
	substr string
	vendor GPUVendor
}{
	{"nvidia", VendorNVIDIA},
	{"geforce", VendorNVIDIA},
	{"advanced micro devices", VendorAMD},
	{"amd/ati", VendorAMD},
	{"radeon", VendorAMD},
	{"intel corporation", VendorIntel},
}

// DetectGPU classifies raw PCI enumeration text into a GPU vendor. It only
// considers display-class lines when any are present, falls back to the
// whole text otherwise, and returns VendorUnknown when nothing matches.
func DetectGPU(raw string) GPUVendor {
	text := displayLines(raw)
	if text == "" {
		text = raw
	}
	text = strings.ToLower(text)

	for _, p := range gpuPatterns {
		if strings.Contains(text, p.substr) {
			return p.vendor
		}
	}
	return VendorUnknown
}

// DetectAudioServer classifies `pactl info` output. PipeWire advertises
// itself in the server name; a bare PulseAudio server name means the real
// daemon is running.
func DetectAudioServer(raw string) AudioServer {
	text := strings.ToLower(raw)
	switch {
	case strings.Contains(text, "pipewire"):
		return AudioPipeWire
	case strings.Contains(text, "pulseaudio"):
		return AudioPulseAudio
	default:
		return AudioUnknown
	}
}

// displayLines extracts VGA/3D/display controller lines from lspci output.
func displayLines(raw string) string {
	var picked []string
	for _, line := range strings.Split(raw, "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "vga compatible controller") ||
			strings.Contains(lower, "3d controller") ||
			strings.Contains(lower, "display controller") {
			picked = append(picked, line)
		}
	}
	return strings.Join(picked, "\n")
}

// Detector inspects the live host through its enumerators.
type Detector struct {
	gpu   types.Enumerator
	audio types.Enumerator
}

// NewDetector creates a detector over the given enumerators. Either may be
// nil, in which case that axis reports unknown.
func NewDetector(gpu, audio types.Enumerator) *Detector {
	return &Detector{gpu: gpu, audio: audio}
}

// Detect computes a fresh capability snapshot. Enumeration failures degrade
// to the unknown category; Detect never returns an error.
func (d *Detector) Detect(sess *types.Session) Capabilities {
	logger := logging.GetLogger("hostcap")
	caps := Capabilities{GPU: VendorUnknown, Audio: AudioUnknown}

	if d.gpu != nil {
		raw, err := d.gpu.Enumerate(sess.Context())
		if err == nil {
			caps.GPU = DetectGPU(raw)
		}
	}
	if d.audio != nil {
		raw, err := d.audio.Enumerate(sess.Context())
		if err == nil {
			caps.Audio = DetectAudioServer(raw)
		}
	}

	logger.Debug().
		Str("gpu", string(caps.GPU)).
		Str("audio", string(caps.Audio)).
		Msg("Host capabilities detected")
	return caps
}
