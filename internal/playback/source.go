package playback

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

var (
	ErrNotAudio    = errors.New("not an audio file")
	ErrUnsupported = errors.New("unsupported audio format")
)

// Source is a track that can be opened for decoding. Open may block and is
// always called off the main goroutine.
type Source struct {
	Label string
	Open  func() (beep.StreamSeekCloser, beep.Format, error)
}

type decodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	"audio/mpeg":     func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) },
	"audio/mp3":      func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) },
	"audio/wav":      func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) },
	"audio/wave":     func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) },
	"audio/x-wav":    func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) },
	"audio/vnd.wave": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) },
	"audio/flac":     func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) },
	"audio/x-flac":   func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) },
	"audio/ogg":      func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) },
	"audio/vorbis":   func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) },
}

// CheckMIME accepts any type in the audio/ family.
func CheckMIME(mimeType string) error {
	if !strings.HasPrefix(mimeType, "audio/") {
		return fmt.Errorf("%w: %s", ErrNotAudio, mimeType)
	}
	return nil
}

// FileSource builds a Source for a local file whose content type has already
// been detected.
func FileSource(path, mimeType string) (Source, error) {
	if err := CheckMIME(mimeType); err != nil {
		return Source{}, err
	}
	base := mimeType
	if i := strings.IndexByte(base, ';'); i >= 0 {
		base = base[:i]
	}
	decode, ok := decoders[strings.TrimSpace(base)]
	if !ok {
		return Source{}, fmt.Errorf("%w: %s", ErrUnsupported, mimeType)
	}

	return Source{
		Label: TrackName(path),
		Open: func() (beep.StreamSeekCloser, beep.Format, error) {
			f, err := os.Open(path)
			if err != nil {
				return nil, beep.Format{}, err
			}
			streamer, format, err := decode(f)
			if err != nil {
				_ = f.Close()
				return nil, beep.Format{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
			}
			return &fileStreamer{StreamSeekCloser: streamer, file: f}, format, nil
		},
	}, nil
}

// TrackName is the file name without directory or extension.
func TrackName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// fileStreamer closes the backing file along with the decoder; not every beep
// decoder owns its reader.
type fileStreamer struct {
	beep.StreamSeekCloser
	file io.Closer
}

func (s *fileStreamer) Close() error {
	err := s.StreamSeekCloser.Close()
	if cerr := s.file.Close(); err == nil && !errors.Is(cerr, os.ErrClosed) {
		err = cerr
	}
	return err
}
