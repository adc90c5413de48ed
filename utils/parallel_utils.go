package utils

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree < 1 {
		ParallelDegree = 1
	}
	if ParallelDegree > maxIndex && maxIndex > 0 {
		ParallelDegree = maxIndex
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

func (pm *PartitionMap) GetBucket(k int) (bucketNum, min, max int) {
	// Initial guess
	bucketNum = int(float64(pm.ParallelDegree*k) / float64(pm.MaxIndex))
	if bucketNum >= pm.ParallelDegree {
		bucketNum = pm.ParallelDegree - 1
	}
	for !(pm.Partitions[bucketNum][0] <= k && pm.Partitions[bucketNum][1] > k) {
		if pm.Partitions[bucketNum][0] > k {
			bucketNum--
		} else {
			bucketNum++
		}
		if bucketNum == -1 || bucketNum == pm.ParallelDegree {
			return -1, 0, 0
		}
	}
	min, max = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(bn int) (kMax int) {
	if bn == -1 {
		kMax = pm.MaxIndex
		return
	}
	var (
		k1, k2 = pm.GetBucketRange(bn)
	)
	kMax = k2 - k1
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// Splits one dimension into ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

// Range runs fn once per bucket, concurrently, and returns the first error.
func (pm *PartitionMap) Range(ctx context.Context,
	fn func(ctx context.Context, bn, kMin, kMax int) error) error {
	if pm.ParallelDegree == 1 {
		return fn(ctx, 0, pm.Partitions[0][0], pm.Partitions[0][1])
	}
	g, gctx := errgroup.WithContext(ctx)
	for bn := 0; bn < pm.ParallelDegree; bn++ {
		kMin, kMax := pm.GetBucketRange(bn)
		g.Go(func() error {
			return fn(gctx, bn, kMin, kMax)
		})
	}
	return g.Wait()
}
