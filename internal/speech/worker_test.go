package speech

import (
	"context"
	"testing"
	"time"
)

func TestWorkerSpeaksInFIFOOrder(t *testing.T) {
	synth := NewMockSynthesizer()
	synth.Delay = 5 * time.Millisecond
	w := NewWorker(synth, nil)
	w.Start(context.Background())

	if err := w.Enqueue("A"); err != nil {
		t.Fatalf("Enqueue(A) error = %v", err)
	}
	w.Join()
	if err := w.Enqueue("B"); err != nil {
		t.Fatalf("Enqueue(B) error = %v", err)
	}
	w.Join()

	spoken := synth.Spoken()
	if len(spoken) != 2 || spoken[0] != "A" || spoken[1] != "B" {
		t.Fatalf("spoken = %v, want [A B]", spoken)
	}
	if err := w.Stop(time.Second); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestWorkerJoinWaitsForPlayback(t *testing.T) {
	synth := NewMockSynthesizer()
	synth.Delay = 30 * time.Millisecond
	w := NewWorker(synth, nil)
	w.Start(context.Background())
	defer w.Stop(time.Second)

	start := time.Now()
	if err := w.Enqueue("slow utterance"); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	w.Join()
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Fatalf("Join returned after %v, before playback finished", elapsed)
	}
	if len(synth.Spoken()) != 1 {
		t.Fatalf("utterance should be fully played before Join returns")
	}
}

func TestWorkerSurvivesSynthesisFailure(t *testing.T) {
	synth := NewMockSynthesizer()
	synth.FailOn = "bad"
	w := NewWorker(synth, nil)
	w.Start(context.Background())
	defer w.Stop(time.Second)

	if err := w.Enqueue("bad"); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	w.Join()
	if err := w.Enqueue("good"); err != nil {
		t.Fatalf("Enqueue() after failure error = %v", err)
	}
	w.Join()

	spoken := synth.Spoken()
	if len(spoken) != 1 || spoken[0] != "good" {
		t.Fatalf("spoken = %v, want [good]", spoken)
	}
}

func TestWorkerStopRejectsFurtherEnqueues(t *testing.T) {
	w := NewWorker(NewMockSynthesizer(), nil)
	w.Start(context.Background())

	if err := w.Stop(time.Second); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := w.Enqueue("late"); err != ErrWorkerStopped {
		t.Fatalf("Enqueue() after stop error = %v, want ErrWorkerStopped", err)
	}
	// Stopping twice is a no-op.
	if err := w.Stop(time.Second); err != nil {
		t.Fatalf("second Stop() error = %v", err)
	}
}

func TestWorkerStopDrainsEnqueued(t *testing.T) {
	synth := NewMockSynthesizer()
	synth.Delay = 10 * time.Millisecond
	w := NewWorker(synth, nil)
	w.Start(context.Background())

	if err := w.Enqueue("farewell"); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	if err := w.Stop(time.Second); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if spoken := synth.Spoken(); len(spoken) != 1 || spoken[0] != "farewell" {
		t.Fatalf("spoken = %v, want [farewell]", spoken)
	}
}
