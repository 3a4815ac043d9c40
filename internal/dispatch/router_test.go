package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/Gunvolt24/wb_taskflow/internal/kafka"
)

type fakeCommitter struct{ calls int }

func (f *fakeCommitter) Commit(context.Context, *kafka.Envelope) { f.calls++ }

type fakeReporter struct{ calls int }

func (f *fakeReporter) Report(context.Context, Outcome) { f.calls++ }

// Успех: коммит без репорта.
func TestRouter_Success_CommitsOnly(t *testing.T) {
	committer := &fakeCommitter{}
	reporter := &fakeReporter{}
	r := NewRouter(committer, reporter, nopLogger{}, true)

	r.Route(context.Background(), Outcome{Envelope: testEnvelope("ok")})

	if committer.calls != 1 {
		t.Fatalf("commit calls: want 1, got %d", committer.calls)
	}
	if reporter.calls != 0 {
		t.Fatalf("report calls: want 0, got %d", reporter.calls)
	}
}

// Сбой при commit_on_failure=true: репорт, затем коммит (журналируем и идём дальше).
func TestRouter_Failure_CommitOnFailure(t *testing.T) {
	committer := &fakeCommitter{}
	reporter := &fakeReporter{}
	r := NewRouter(committer, reporter, nopLogger{}, true)

	r.Route(context.Background(), Outcome{Envelope: testEnvelope("bad"), Err: errors.New("boom")})

	if reporter.calls != 1 {
		t.Fatalf("report calls: want 1, got %d", reporter.calls)
	}
	if committer.calls != 1 {
		t.Fatalf("commit calls: want 1, got %d", committer.calls)
	}
}

// Сбой при commit_on_failure=false: репорт, оффсет не двигаем.
func TestRouter_Failure_NoCommit(t *testing.T) {
	committer := &fakeCommitter{}
	reporter := &fakeReporter{}
	r := NewRouter(committer, reporter, nopLogger{}, false)

	r.Route(context.Background(), Outcome{Envelope: testEnvelope("bad"), Err: errors.New("boom")})

	if reporter.calls != 1 {
		t.Fatalf("report calls: want 1, got %d", reporter.calls)
	}
	if committer.calls != 0 {
		t.Fatalf("commit calls: want 0, got %d", committer.calls)
	}
}
