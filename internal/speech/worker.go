package speech

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

var ErrWorkerStopped = errors.New("speech worker stopped")

// Synthesizer turns one utterance into audible output, blocking until playback
// completes. Failures are reported but never kill the worker.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
}

// Metrics is the subset of instrumentation the worker reports to.
type Metrics interface {
	SpeechSpoken()
	SpeechError()
	SpeechQueueDepth(n int)
}

// Worker is the single consumer that drains the utterance queue. Utterances
// play in strict FIFO order, one at a time. Join blocks the producer until
// everything enqueued so far has finished playing.
type Worker struct {
	synth   Synthesizer
	metrics Metrics

	mu       sync.Mutex
	requests chan string
	stopped  bool

	pending sync.WaitGroup
	done    chan struct{}
}

func NewWorker(synth Synthesizer, metrics Metrics) *Worker {
	return &Worker{
		synth:    synth,
		metrics:  metrics,
		requests: make(chan string, 16),
		done:     make(chan struct{}),
	}
}

// Start launches the consumer goroutine. ctx bounds playback of the current
// utterance during shutdown; it does not stop the worker by itself.
func (w *Worker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)
	for text := range w.requests {
		if err := w.synth.Speak(ctx, text); err != nil {
			// A single bad utterance never kills the worker.
			log.Printf("[speech] synthesis failed: %v", err)
			if w.metrics != nil {
				w.metrics.SpeechError()
			}
		} else if w.metrics != nil {
			w.metrics.SpeechSpoken()
		}
		w.pending.Done()
		if w.metrics != nil {
			w.metrics.SpeechQueueDepth(len(w.requests))
		}
	}
}

// Enqueue hands an utterance to the worker. Ownership of the text transfers to
// the worker; the caller observes completion through Join.
func (w *Worker) Enqueue(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return ErrWorkerStopped
	}
	w.pending.Add(1)
	w.requests <- text
	if w.metrics != nil {
		w.metrics.SpeechQueueDepth(len(w.requests))
	}
	return nil
}

// Join is the drain barrier: it blocks until every utterance enqueued so far
// has been fully played (or failed and been logged).
func (w *Worker) Join() {
	w.pending.Wait()
}

// Stop closes the queue and waits up to timeout for the consumer to exit.
// Already-enqueued utterances still play.
func (w *Worker) Stop(timeout time.Duration) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.requests)
	w.mu.Unlock()

	if timeout <= 0 {
		<-w.done
		return nil
	}
	select {
	case <-w.done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("speech worker did not exit within %s", timeout)
	}
}
