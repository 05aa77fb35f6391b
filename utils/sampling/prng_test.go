package sampling_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/ballpoly/utils/sampling"
)

func TestPRNG(t *testing.T) {

	key := []byte{0x49, 0x0a, 0x42, 0x3d, 0x97, 0x9d, 0xc1, 0x07, 0xa1, 0xd7, 0xe9, 0x7b, 0x3b, 0xce, 0xa1, 0xdb}

	t.Run("Reset", func(t *testing.T) {
		Ha, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)
		Hb, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)

		sum0 := make([]byte, 512)
		sum1 := make([]byte, 512)

		for i := 0; i < 16; i++ {
			_, _ = Hb.Read(sum1)
		}

		Hb.Reset()

		_, _ = Ha.Read(sum0)
		_, _ = Hb.Read(sum1)

		require.Equal(t, sum0, sum1)
		require.Equal(t, key, Ha.Key())
	})

	t.Run("Samplers", func(t *testing.T) {
		prng, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)

		for i := 0; i < 256; i++ {
			f := sampling.RandFloat64(prng, -1, 1)
			require.Less(t, f, 1.0)
			require.GreaterOrEqual(t, f, -1.0)
		}
	})
}
