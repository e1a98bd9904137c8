package log_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/choosr/pkg/log"
)

func TestBuffer_WriteAndReplay(t *testing.T) {
	t.Parallel()

	buf := log.NewBuffer(10)

	for _, line := range []string{"one\n", "two\n", "three\n"} {
		n, err := buf.Write([]byte(line))
		require.NoError(t, err)
		assert.Equal(t, len(line), n)
	}

	assert.Equal(t, 3, buf.Size())
	assert.False(t, buf.IsFull())

	var out strings.Builder

	_, err := buf.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\nthree\n", out.String())

	// WriteTo drains the buffer.
	assert.Equal(t, 0, buf.Size())
}

func TestBuffer_EvictsOldest(t *testing.T) {
	t.Parallel()

	buf := log.NewBuffer(2)

	for _, line := range []string{"a\n", "b\n", "c\n"} {
		_, err := buf.Write([]byte(line))
		require.NoError(t, err)
	}

	assert.True(t, buf.IsFull())

	var out strings.Builder

	_, err := buf.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, "b\nc\n", out.String())
}

func TestBuffer_EmptyWrite(t *testing.T) {
	t.Parallel()

	buf := log.NewBuffer(2)

	n, err := buf.Write(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, buf.Size())
}

func TestBuffer_DefaultCapacity(t *testing.T) {
	t.Parallel()

	buf := log.NewBuffer(0)
	assert.Equal(t, 100, buf.Capacity())
}
