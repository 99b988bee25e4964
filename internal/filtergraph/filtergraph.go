// Package filtergraph compiles kept segments into an ffmpeg
// filter_complex program. The output always goes through a script file
// (-filter_complex_script): long videos produce hundreds of segments and
// the expanded expression would blow past the command-line length limit
// of some shells.
package filtergraph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"subcut/internal/segment"
)

// strategy for realizing the kept segments as filter operations
type Variant string

const (
	// VariantSelect keeps frames with one select/aselect expression and
	// a timestamp rebuild. Four chains total no matter how many segments,
	// so it scales to heavily fragmented subtitles.
	VariantSelect Variant = "select"

	// VariantTrim cuts each segment with a bound trim/atrim pair and
	// concatenates the pieces. More filters and intermediate streams, but
	// each segment's audio and video share the exact same time range,
	// which keeps sync tight on variable-frame-rate sources.
	VariantTrim Variant = "trim"
)

// labels the compiled graph assigns to its two output streams
const (
	VideoLabel = "[outv]"
	AudioLabel = "[outa]"
)

var ErrNoSegments = errors.New("no segments to keep")

type InvalidVariantError struct {
	Variant Variant
}

func (e *InvalidVariantError) Error() string {
	return fmt.Sprintf(
		"unknown filter graph variant %q: use %q or %q",
		e.Variant,
		VariantSelect,
		VariantTrim,
	)
}

// Options holds the stream parameters baked into the compiled graph.
type Options struct {
	FrameRate   string // source r_frame_rate, e.g. "30000/1001"; empty skips the fps stage
	SampleRate  int    // output audio sample rate; 0 skips resampling
	PixelFormat string // output pixel format; empty skips the format stage
	Loudnorm    bool   // EBU R128 loudness normalization
}

func DefaultOptions() Options {
	return Options{
		SampleRate:  44100,
		PixelFormat: "yuv420p",
		Loudnorm:    true,
	}
}

const loudnormFilter = "loudnorm=I=-16:TP=-1.5:LRA=11"

// compiled filter graph plus the figures callers report on
type Script struct {
	FilterGraph  string
	SegmentCount int
	KeptDuration time.Duration
}

func Compile(segments []segment.Segment, variant Variant, opts Options) (*Script, error) {
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}

	var graph string
	switch variant {
	case VariantSelect:
		graph = compileSelect(segments, opts)
	case VariantTrim:
		graph = compileTrim(segments, opts)
	default:
		return nil, &InvalidVariantError{Variant: variant}
	}

	return &Script{
		FilterGraph:  graph,
		SegmentCount: len(segments),
		KeptDuration: segment.Total(segments),
	}, nil
}

func ParseVariant(s string) (Variant, error) {
	variant := Variant(strings.ToLower(strings.TrimSpace(s)))
	switch variant {
	case VariantSelect, VariantTrim:
		return variant, nil
	default:
		return "", &InvalidVariantError{Variant: variant}
	}
}

// compileSelect emits one between() term per segment, ORed together and
// applied to both streams. setpts/asetpts rebuild the timestamps so the
// kept frames and samples play back contiguously from zero. The fps stage
// pins variable-frame-rate input to a constant rate first; otherwise
// select can pick frames off by a timestamp wobble.
func compileSelect(segments []segment.Segment, opts Options) string {
	terms := make([]string, len(segments))
	for i, s := range segments {
		terms[i] = fmt.Sprintf(
			"between(t,%s,%s)",
			seconds(s.Start),
			seconds(s.End),
		)
	}
	expr := strings.Join(terms, "+")

	var video strings.Builder
	video.WriteString("[0:v]")
	if opts.FrameRate != "" {
		fmt.Fprintf(&video, "fps=%s,", opts.FrameRate)
	}
	fmt.Fprintf(&video, "select='%s',setpts=N/FRAME_RATE/TB", expr)
	if opts.PixelFormat != "" {
		fmt.Fprintf(&video, ",format=%s", opts.PixelFormat)
	}
	video.WriteString(VideoLabel)

	var audio strings.Builder
	audio.WriteString("[0:a]")
	fmt.Fprintf(&audio, "aselect='%s',asetpts=N/SR/TB", expr)
	if opts.Loudnorm {
		audio.WriteString("," + loudnormFilter)
	}
	if opts.SampleRate > 0 {
		fmt.Fprintf(&audio, ",aresample=%d", opts.SampleRate)
	}
	audio.WriteString(AudioLabel)

	return video.String() + ";" + audio.String()
}

// compileTrim emits a trim/atrim pair per segment and joins the pieces
// with two concat stages. Each pair shares one start/end, binding audio to
// video before concatenation.
func compileTrim(segments []segment.Segment, opts Options) string {
	n := len(segments)
	parts := make([]string, 0, 2*n+2)

	for i, s := range segments {
		parts = append(parts, fmt.Sprintf(
			"[0:v]trim=start=%s:end=%s,setpts=PTS-STARTPTS[v%d]",
			seconds(s.Start), seconds(s.End), i,
		))
		parts = append(parts, fmt.Sprintf(
			"[0:a]atrim=start=%s:end=%s,asetpts=PTS-STARTPTS[a%d]",
			seconds(s.Start), seconds(s.End), i,
		))
	}

	var videoInputs, audioInputs strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&videoInputs, "[v%d]", i)
		fmt.Fprintf(&audioInputs, "[a%d]", i)
	}

	videoConcat := fmt.Sprintf("%sconcat=n=%d:v=1:a=0", videoInputs.String(), n)
	if opts.PixelFormat != "" {
		videoConcat += ",format=" + opts.PixelFormat
	}
	parts = append(parts, videoConcat+VideoLabel)

	audioConcat := fmt.Sprintf("%sconcat=n=%d:v=0:a=1", audioInputs.String(), n)
	if opts.SampleRate > 0 {
		audioConcat += fmt.Sprintf(",aresample=%d", opts.SampleRate)
	}
	if opts.Loudnorm {
		audioConcat += "," + loudnormFilter
	}
	parts = append(parts, audioConcat+AudioLabel)

	return strings.Join(parts, ";")
}

// seconds renders a duration as fractional seconds at millisecond
// precision, matching the resolution of subtitle timestamps.
func seconds(d time.Duration) string {
	return strconv.FormatFloat(float64(d.Milliseconds())/1000, 'f', 3, 64)
}
