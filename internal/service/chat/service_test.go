package chat_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sehatlabs/healthchat/internal/model/chat"
	"github.com/sehatlabs/healthchat/internal/service/ai"
	chatservice "github.com/sehatlabs/healthchat/internal/service/chat"
)

type fakeCompleter struct {
	reply   string
	calls   int
	history []chat.Turn
}

func (f *fakeCompleter) Complete(_ context.Context, history []chat.Turn, _ string) string {
	f.calls++
	f.history = history
	return f.reply
}

func TestSendNormalMessage(t *testing.T) {
	store := chat.NewMemoryStore()
	completer := &fakeCompleter{reply: "drink plenty of water"}
	svc := chatservice.NewService(store, completer)
	ctx := context.Background()

	turn, err := svc.Send(ctx, "I have a mild headache")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}

	if turn.Bot != "drink plenty of water" {
		t.Fatalf("unexpected reply: %q", turn.Bot)
	}
	if turn.IsEmergency {
		t.Fatal("headache should not be an emergency")
	}
	if turn.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}
	if completer.calls != 1 {
		t.Fatalf("expected 1 completion call, got %d", completer.calls)
	}

	history := svc.History(ctx)
	if len(history) != 1 || history[0].User != "I have a mild headache" {
		t.Fatalf("turn not persisted: %+v", history)
	}
}

func TestSendEmergencySkipsCompleter(t *testing.T) {
	store := chat.NewMemoryStore()
	completer := &fakeCompleter{reply: "should never be used"}
	svc := chatservice.NewService(store, completer)
	ctx := context.Background()

	turn, err := svc.Send(ctx, "sudden chest pain and sweating")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}

	if !turn.IsEmergency {
		t.Fatal("expected emergency flag")
	}
	if turn.Bot != chatservice.EmergencyReply {
		t.Fatalf("expected fixed emergency reply, got %q", turn.Bot)
	}
	if completer.calls != 0 {
		t.Fatalf("completer must not be called on emergency path, got %d calls", completer.calls)
	}

	history := svc.History(ctx)
	if len(history) != 1 || !history[0].IsEmergency {
		t.Fatalf("emergency turn not persisted: %+v", history)
	}
}

func TestSendEmptyMessage(t *testing.T) {
	store := chat.NewMemoryStore()
	svc := chatservice.NewService(store, &fakeCompleter{})
	ctx := context.Background()

	for _, msg := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Send(ctx, msg); !errors.Is(err, chatservice.ErrEmptyMessage) {
			t.Fatalf("expected ErrEmptyMessage for %q, got %v", msg, err)
		}
	}

	if history := svc.History(ctx); len(history) != 0 {
		t.Fatalf("rejected messages must not be persisted, got %d turns", len(history))
	}
}

func TestSendWithoutCompleter(t *testing.T) {
	store := chat.NewMemoryStore()
	svc := chatservice.NewService(store, nil)

	turn, err := svc.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}
	if turn.Bot != ai.WarnAuth {
		t.Fatalf("expected auth warning without completer, got %q", turn.Bot)
	}
}

func TestSendPassesPriorHistoryToCompleter(t *testing.T) {
	store := chat.NewMemoryStore()
	completer := &fakeCompleter{reply: "ok"}
	svc := chatservice.NewService(store, completer)
	ctx := context.Background()

	if _, err := svc.Send(ctx, "first message"); err != nil {
		t.Fatalf("Send err: %v", err)
	}
	if _, err := svc.Send(ctx, "second message"); err != nil {
		t.Fatalf("Send err: %v", err)
	}

	// The second call must see exactly the first turn, not its own.
	if len(completer.history) != 1 {
		t.Fatalf("expected 1 prior turn, got %d", len(completer.history))
	}
	if completer.history[0].User != "first message" {
		t.Fatalf("unexpected prior turn: %+v", completer.history[0])
	}
}

func TestClear(t *testing.T) {
	store := chat.NewMemoryStore()
	svc := chatservice.NewService(store, &fakeCompleter{reply: "ok"})
	ctx := context.Background()

	if _, err := svc.Send(ctx, "hello"); err != nil {
		t.Fatalf("Send err: %v", err)
	}
	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("Clear err: %v", err)
	}
	if history := svc.History(ctx); len(history) != 0 {
		t.Fatalf("expected empty history after clear, got %d turns", len(history))
	}
}

func TestTimestampsNonDecreasing(t *testing.T) {
	store := chat.NewMemoryStore()
	svc := chatservice.NewService(store, &fakeCompleter{reply: "ok"})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.Send(ctx, "message"); err != nil {
			t.Fatalf("Send err: %v", err)
		}
	}

	history := svc.History(ctx)
	if len(history) != 5 {
		t.Fatalf("expected 5 turns, got %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].Timestamp.Before(history[i-1].Timestamp) {
			t.Fatalf("timestamps decreased at index %d", i)
		}
	}
}
