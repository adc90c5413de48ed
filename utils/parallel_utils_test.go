package utils

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPartitionMap(t *testing.T) {
	getHisto := func(K, Np int) (histo map[int]int) {
		pm := NewPartitionMap(Np, K)
		histo = make(map[int]int)
		for np := 0; np < pm.ParallelDegree; np++ {
			maxK := pm.GetBucketDimension(np)
			histo[maxK]++
		}
		return
	}
	getTotal := func(histo map[int]int) (total int) {
		for key, count := range histo {
			total += key * count
		}
		return
	}
	{
		assert.Equal(t, map[int]int{1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 2000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // inverse lookup of the bucket holding an index
		for maxIndex := 10; maxIndex < 300; maxIndex++ {
			pm := NewPartitionMap(5, maxIndex)
			for k := 0; k < maxIndex; k++ {
				bn, min, max := pm.GetBucket(k)
				mmin, mmax := pm.GetBucketRange(bn)
				assert.True(t, k >= min && k < max && min == mmin && max == mmax)
			}
		}
	}
}

func TestPartitionMapRange(t *testing.T) {
	{ // every index is visited exactly once
		pm := NewPartitionMap(4, 103)
		visits := make([]int32, 103)
		err := pm.Range(context.Background(), func(ctx context.Context, bn, kMin, kMax int) error {
			for k := kMin; k < kMax; k++ {
				atomic.AddInt32(&visits[k], 1)
			}
			return nil
		})
		require.NoError(t, err)
		for _, v := range visits {
			assert.Equal(t, int32(1), v)
		}
	}
	{ // errors propagate
		pm := NewPartitionMap(3, 9)
		errBad := errors.New("bad bucket")
		err := pm.Range(context.Background(), func(ctx context.Context, bn, kMin, kMax int) error {
			if bn == 1 {
				return errBad
			}
			return nil
		})
		assert.ErrorIs(t, err, errBad)
	}
}

func TestMathHelpers(t *testing.T) {
	assert.Equal(t, 8., POW(2, 3))
	assert.Equal(t, 0.25, POW(2, -2))
	assert.InDelta(t, math.Pow(1.1, 11), POW(1.1, 11), 1.e-12)
	assert.True(t, IsNan([]float64{1, math.NaN()}))
	assert.False(t, IsNan(1.))
	assert.Contains(t, GetMemUsage(), "MiB")
}
