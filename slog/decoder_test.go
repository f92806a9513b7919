package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/wprecover"
	"github.com/fwojciec/wprecover/mock"
	wpslog "github.com/fwojciec/wprecover/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// charsetDecoder reports a fixed encoding and counts how it was called.
type charsetDecoder struct {
	decodeCalls  int
	charsetCalls int
}

func (d *charsetDecoder) Decode(raw []byte) (string, error) {
	d.decodeCalls++
	return string(raw), nil
}

func (d *charsetDecoder) DecodeCharset(raw []byte) (string, string, error) {
	d.charsetCalls++
	return string(raw), "shift_jis", nil
}

func TestLoggingDecoder_Decode(t *testing.T) {
	t.Parallel()

	t.Run("logs size and duration at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Decoder{
			DecodeFn: func(raw []byte) (string, error) {
				return string(raw), nil
			},
		}

		got, err := wpslog.NewLoggingDecoder(inner, logger).Decode([]byte("hello"))

		require.NoError(t, err)
		assert.Equal(t, "hello", got)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "msg=decode")
		assert.Contains(t, output, "bytes=5")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "encoding=")
	})

	t.Run("reports the encoding detected while decoding", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &charsetDecoder{}

		got, err := wpslog.NewLoggingDecoder(inner, logger).Decode([]byte("hello"))

		require.NoError(t, err)
		assert.Equal(t, "hello", got)
		assert.Contains(t, buf.String(), "encoding=shift_jis")
		// Detection runs once, as part of decoding.
		assert.Equal(t, 1, inner.charsetCalls)
		assert.Equal(t, 0, inner.decodeCalls)
	})

	t.Run("logs failures as warnings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Decoder{
			DecodeFn: func([]byte) (string, error) {
				return "", wprecover.Errorf(wprecover.EINVALID, "could not decode")
			},
		}

		_, err := wpslog.NewLoggingDecoder(inner, logger).Decode([]byte{0xff})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "decode failed")
		assert.Contains(t, output, "err=\"could not decode\"")
	})
}
