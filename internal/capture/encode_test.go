package capture

import (
	"bytes"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wlds/wlds-go/internal/conf"
)

func TestEncodePCMtoWAV(t *testing.T) {
	// 1000 16-bit samples of silence.
	pcm := make([]byte, 2000)

	data, err := encodePCMtoWAV(pcm)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))

	dec := wav.NewDecoder(bytes.NewReader(data))
	dec.ReadInfo()
	require.True(t, dec.IsValidFile())
	assert.Equal(t, uint32(conf.SampleRate), dec.SampleRate)
	assert.Equal(t, uint16(conf.BitDepth), dec.BitDepth)
	assert.Equal(t, uint16(conf.NumChannels), dec.NumChans)
}

func TestEncodePCMtoWAVEmptyInput(t *testing.T) {
	_, err := encodePCMtoWAV(nil)
	require.Error(t, err)
}

func TestByteSliceToInts(t *testing.T) {
	// Little-endian samples: 1, -1, 256.
	pcm := []byte{0x01, 0x00, 0xFF, 0xFF, 0x00, 0x01}

	samples := byteSliceToInts(pcm)
	assert.Equal(t, []int{1, -1, 256}, samples)
}

func TestByteSliceToIntsOddTrailingByte(t *testing.T) {
	pcm := []byte{0x01, 0x00, 0x02}

	samples := byteSliceToInts(pcm)
	assert.Equal(t, []int{1}, samples, "a trailing half sample is dropped")
}

func TestSeekableBuffer(t *testing.T) {
	b := &seekableBuffer{}

	n, err := b.Write([]byte("abcdef"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	_, err = b.Seek(0, 0)
	require.NoError(t, err)

	_, err = b.Write([]byte("XY"))
	require.NoError(t, err)
	assert.Equal(t, "XYcdef", string(b.buf), "seek-back writes overwrite in place")
}
