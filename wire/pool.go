package wire

import "sync"

// poolCapacity bounds the free list so a burst of decodes can't leave it
// holding an unbounded number of retained buffers.
const poolCapacity = 100

// DecoderPool is a bounded free list of Decoders. It exists to avoid
// allocation churn when a single process decodes many messages in
// sequence, expressed as an explicit value a caller owns rather than a
// package-level global so a parallelized caller can give each worker its
// own pool without sharing mutable state across goroutines.
type DecoderPool struct {
	mu   sync.Mutex
	free []*Decoder
	hits uint64
	miss uint64
}

// NewDecoderPool returns an empty pool ready for use.
func NewDecoderPool() *DecoderPool {
	return &DecoderPool{}
}

// Get returns a Decoder seated on buf, reusing a pooled instance when one
// is available.
func (p *DecoderPool) Get(buf []byte) *Decoder {
	p.mu.Lock()
	n := len(p.free)
	if n == 0 {
		p.miss++
		p.mu.Unlock()
		return NewDecoder(buf)
	}
	d := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	p.hits++
	p.mu.Unlock()
	d.SetBlock(buf, 0, len(buf))
	return d
}

// Put returns a Decoder to the pool for reuse, dropping it if the pool is
// already at capacity.
func (p *DecoderPool) Put(d *Decoder) {
	d.Clear()
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) >= poolCapacity {
		return
	}
	p.free = append(p.free, d)
}

// Stats reports pool hit/miss counters and current free-list size. It is
// purely observational, used by tests, never by generated-code call sites.
func (p *DecoderPool) Stats() (hits, misses uint64, size int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits, p.miss, len(p.free)
}
