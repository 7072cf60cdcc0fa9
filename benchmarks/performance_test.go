// Package benchmarks
// Author: momentics <momentics@gmail.com>
//
// Performance benchmarks for the queue and dispatch components.

package benchmarks

import (
	"context"
	"sync"
	"testing"

	"github.com/DaveBerkeley/panglos-sub001/core/evq"
	"github.com/DaveBerkeley/panglos-sub001/core/msgq"
	"github.com/DaveBerkeley/panglos-sub001/core/ring"
	"github.com/DaveBerkeley/panglos-sub001/facade"
)

// BenchmarkRingBufferThroughput measures single-goroutine push/pop.
func BenchmarkRingBufferThroughput(b *testing.B) {
	r := ring.New[int](1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !r.Enqueue(i) {
			r.Dequeue()
			r.Enqueue(i)
		}
	}
}

// BenchmarkRingBufferSPSC measures one producer feeding one consumer.
func BenchmarkRingBufferSPSC(b *testing.B) {
	r := ring.New[int](1024)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for n := 0; n < b.N; {
			if _, ok := r.Dequeue(); ok {
				n++
			}
		}
	}()

	b.ResetTimer()
	for i := 0; i < b.N; {
		if r.Enqueue(i) {
			i++
		}
	}
	<-done
}

// BenchmarkMessageQueueMPMC measures parallel producers with one consumer
// per producer.
func BenchmarkMessageQueueMPMC(b *testing.B) {
	q := msgq.New[int]()
	var wg sync.WaitGroup

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for q.Wait() != 0 {
			}
		}()
		for pb.Next() {
			q.Put(1)
		}
		q.Put(0)
	})
	wg.Wait()
}

// BenchmarkEvQueueAddRun measures scheduling and firing events across a
// tick wrap.
func BenchmarkEvQueueAddRun(b *testing.B) {
	q := evq.New()
	events := make([]*evq.Event, 64)
	for i := range events {
		events[i] = evq.NewEvent("bench", 0, func(*evq.Event, evq.Tick) {})
	}
	now := evq.Tick(0xFFFFFF00)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j, ev := range events {
			ev.When = now + evq.Tick(j*7%64)
			q.Add(ev)
		}
		now += 64
		for q.Run(now) {
		}
	}
}

// BenchmarkFacadeSubmit tests end-to-end task submission through the facade.
func BenchmarkFacadeSubmit(b *testing.B) {
	cfg := facade.DefaultConfig()
	cfg.Workers = 4
	cfg.LogLevel = "off"
	sub, err := facade.New(cfg)
	if err != nil {
		b.Fatal(err)
	}
	if err := sub.Start(context.Background()); err != nil {
		b.Fatal(err)
	}
	defer sub.Shutdown()

	var wg sync.WaitGroup
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wg.Add(1)
		if err := sub.Submit(wg.Done); err != nil {
			b.Fatal(err)
		}
	}
	wg.Wait()
}
