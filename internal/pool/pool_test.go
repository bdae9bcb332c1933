package pool_test

import (
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynmotion/internal/pool"
)

type scratch struct {
	buf  []float64
	used bool
}

func newScratch() scratch {
	return scratch{buf: make([]float64, 4)}
}

func resetScratch(s *scratch) {
	clear(s.buf)
	s.used = false
}

var _ = Describe("Pool", func() {
	var (
		p   *pool.Pool[scratch]
		now time.Time
	)

	clock := func() time.Time { return now }

	BeforeEach(func() {
		now = time.Unix(1000, 0)
		p = pool.New(newScratch, resetScratch, pool.Options{
			Name:       "scratch",
			MinIdle:    1,
			Quiescence: time.Second,
			Now:        clock,
			Logger:     GinkgoLogr,
		})
	})

	It("allocates on an empty free list and counts the miss", func() {
		h := p.Checkout()
		Expect(h.Valid()).To(BeTrue())
		Expect(h.Value().buf).To(HaveLen(4))

		s := p.Stats()
		Expect(s.Misses).To(Equal(1))
		Expect(s.Allocations).To(Equal(1))
		Expect(s.Outstanding).To(Equal(1))
	})

	It("reuses released entries and resets them", func() {
		h := p.Checkout()
		h.Value().buf[0] = 42
		h.Value().used = true
		Expect(h.Release()).To(BeTrue())

		h2 := p.Checkout()
		Expect(h2.Value().buf[0]).To(BeZero())
		Expect(h2.Value().used).To(BeFalse())

		want := pool.Stats{Outstanding: 1, Peak: 1, Allocations: 1, Reuses: 1, Misses: 1}
		Expect(cmp.Diff(want, p.Stats())).To(BeEmpty())
	})

	It("ignores a double release", func() {
		h := p.Checkout()
		Expect(h.Release()).To(BeTrue())
		Expect(h.Release()).To(BeFalse())
		Expect(h.Valid()).To(BeFalse())
		Expect(h.Value()).To(BeNil())

		s := p.Stats()
		Expect(s.DoubleReleases).To(Equal(1))
		Expect(s.Outstanding).To(Equal(0))
		Expect(s.Idle).To(Equal(1))
	})

	It("hands out distinct entries after a double release", func() {
		h := p.Checkout()
		Expect(h.Release()).To(BeTrue())
		Expect(h.Release()).To(BeFalse())

		h1, h2 := p.Checkout(), p.Checkout()
		Expect(h1.Value()).NotTo(BeIdenticalTo(h2.Value()))

		h1.Value().buf[0] = 7
		h1.Value().used = true
		Expect(h2.Value().buf[0]).To(BeZero())
		Expect(h2.Value().used).To(BeFalse())

		Expect(p.Stats().Outstanding).To(Equal(2))
		Expect(p.Stats().Idle).To(Equal(0))
	})

	It("rejects a handle from another pool", func() {
		other := pool.New(newScratch, resetScratch, pool.Options{})
		h := other.Checkout()
		Expect(p.Release(h)).To(BeFalse())
		Expect(h.Valid()).To(BeTrue())
		Expect(p.Stats().DoubleReleases).To(Equal(1))
		Expect(other.Stats().Outstanding).To(Equal(1))
		Expect(h.Release()).To(BeTrue())
	})

	It("tracks peak outstanding", func() {
		hs := []*pool.Handle[scratch]{p.Checkout(), p.Checkout(), p.Checkout()}
		for _, h := range hs {
			h.Release()
		}
		p.Checkout()
		s := p.Stats()
		Expect(s.Peak).To(Equal(3))
		Expect(s.Outstanding).To(Equal(1))
		Expect(s.Idle).To(Equal(2))
	})

	It("releases scoped entries even when the body panics", func() {
		Expect(func() {
			p.With(func(s *scratch) {
				s.used = true
				panic("boom")
			})
		}).To(PanicWith("boom"))

		s := p.Stats()
		Expect(s.Outstanding).To(Equal(0))
		Expect(s.Idle).To(Equal(1))
	})

	It("trims to the floor only after quiescence", func() {
		p.Prewarm(5)
		Expect(p.Trim()).To(Equal(0))

		now = now.Add(500 * time.Millisecond)
		Expect(p.Trim()).To(Equal(0))

		now = now.Add(600 * time.Millisecond)
		Expect(p.Trim()).To(Equal(4))
		Expect(p.Stats().Idle).To(Equal(1))
		Expect(p.Stats().Trimmed).To(Equal(4))
	})

	It("restarts the quiescence window on activity", func() {
		p.Prewarm(3)
		now = now.Add(900 * time.Millisecond)
		p.Checkout().Release()
		now = now.Add(900 * time.Millisecond)
		Expect(p.Trim()).To(Equal(0))
	})

	It("drops releases beyond MaxIdle", func() {
		capped := pool.New(newScratch, resetScratch, pool.Options{MaxIdle: 2})
		hs := []*pool.Handle[scratch]{capped.Checkout(), capped.Checkout(), capped.Checkout()}
		for _, h := range hs {
			h.Release()
		}
		s := capped.Stats()
		Expect(s.Idle).To(Equal(2))
		Expect(s.Discarded).To(Equal(1))
	})

	It("clears idle entries", func() {
		p.Prewarm(3)
		p.Clear()
		Expect(p.Stats().Idle).To(BeZero())
	})

	It("stays consistent under concurrent use", func() {
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				for j := 0; j < 200; j++ {
					h := p.Checkout()
					h.Value().buf[0]++
					h.Release()
				}
			}()
		}
		wg.Wait()

		s := p.Stats()
		Expect(s.Outstanding).To(BeZero())
		Expect(s.Reuses + s.Misses).To(Equal(16 * 200))
		Expect(s.Idle).To(Equal(s.Allocations))
	})

	It("logs a diagnostic on double release", func() {
		var lines []string
		log := funcr.New(func(prefix, args string) {
			lines = append(lines, args)
		}, funcr.Options{Verbosity: 1})

		logged := pool.New(newScratch, nil, pool.Options{Name: "cfg", Logger: log})
		h := logged.Checkout()
		h.Release()
		h.Release()

		Expect(lines).To(HaveLen(1))
		Expect(strings.Contains(lines[0], "invalid handle")).To(BeTrue())
		Expect(lines[0]).To(ContainSubstring(`"pool"="cfg"`))
	})
})
