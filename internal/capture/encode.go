package capture

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/wlds/wlds-go/internal/conf"
)

// seekableBuffer extends bytes.Buffer with a Seek method, making it
// compatible with the io.WriteSeeker the WAV encoder requires.
type seekableBuffer struct {
	buf []byte
	pos int
}

func (b *seekableBuffer) Write(p []byte) (int, error) {
	if need := b.pos + len(p); need > len(b.buf) {
		grown := make([]byte, need)
		copy(grown, b.buf)
		b.buf = grown
	}
	n := copy(b.buf[b.pos:], p)
	b.pos += n
	return n, nil
}

func (b *seekableBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int
	switch whence {
	case io.SeekStart:
		pos = int(offset)
	case io.SeekCurrent:
		pos = b.pos + int(offset)
	case io.SeekEnd:
		pos = len(b.buf) + int(offset)
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("negative seek position %d", pos)
	}
	b.pos = pos
	return int64(pos), nil
}

// encodePCMtoWAV finalizes raw PCM data into an in-memory WAV payload using
// the capture format settings.
func encodePCMtoWAV(pcmData []byte) ([]byte, error) {
	if len(pcmData) == 0 {
		return nil, fmt.Errorf("pcmData is empty")
	}

	out := &seekableBuffer{}
	enc := wav.NewEncoder(out, conf.SampleRate, conf.BitDepth, conf.NumChannels, 1)

	intSamples := byteSliceToInts(pcmData)
	if err := enc.Write(&audio.IntBuffer{
		Data:   intSamples,
		Format: &audio.Format{SampleRate: conf.SampleRate, NumChannels: conf.NumChannels},
	}); err != nil {
		return nil, fmt.Errorf("failed to write to WAV encoder: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize WAV encoding: %w", err)
	}
	return out.buf, nil
}

// byteSliceToInts converts a byte slice to a slice of integers.
// Each pair of bytes is treated as a single 16-bit sample.
func byteSliceToInts(pcmData []byte) []int {
	var samples []int
	buf := bytes.NewBuffer(pcmData)

	for {
		var sample int16
		if err := binary.Read(buf, binary.LittleEndian, &sample); err != nil {
			break
		}
		samples = append(samples, int(sample))
	}

	return samples
}
