package mempool

import (
	"testing"

	"github.com/zecd-io/zecd/pkg/core/transaction"
)

const benchPoolSize = 10000

func BenchmarkPool(b *testing.B) {
	disjoint := make([]*transaction.VerifiedTx, benchPoolSize)
	for i := range disjoint {
		disjoint[i] = newTestTx(250, 4000, nil, 2, 1.0)
	}
	lowFee := make([]*transaction.VerifiedTx, benchPoolSize)
	for i := range lowFee {
		lowFee[i] = newTestTx(250, 4000, nil, 2, 0.5)
	}

	senders := map[string][]*transaction.VerifiedTx{
		"disjoint, conventional fee": disjoint,
		"disjoint, low fee":          lowFee,
	}
	for name, txs := range senders {
		b.Run(name, func(b *testing.B) {
			b.ResetTimer()
			for n := 0; n < b.N; n++ {
				s := NewVerifiedSet()
				for _, tx := range txs {
					if s.Insert(tx) != nil {
						b.Fail()
					}
				}
				s.RemoveAllThat(func(*transaction.VerifiedTx) bool { return true })
			}
		})
	}
}

func BenchmarkEvictOne(b *testing.B) {
	s := NewVerifiedSet()
	for i := 0; i < benchPoolSize; i++ {
		if s.Insert(newTestTx(250, 4000, nil, 2, 1.0)) != nil {
			b.Fatal("insert failed")
		}
	}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		tx := s.EvictOne()
		if tx == nil {
			b.StopTimer()
			for i := 0; i < benchPoolSize; i++ {
				if s.Insert(newTestTx(250, 4000, nil, 2, 1.0)) != nil {
					b.Fatal("insert failed")
				}
			}
			b.StartTimer()
			continue
		}
		if s.Insert(tx) != nil {
			b.Fatal("reinsert failed")
		}
	}
}
