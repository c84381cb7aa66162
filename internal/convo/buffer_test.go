package convo

import "testing"

func TestBufferAppendOrder(t *testing.T) {
	b := NewBuffer(0)
	b.Append(RoleUser, "hello")
	b.Append(RoleModel, "hi there")
	b.Append(RoleUser, "how are you")

	turns := b.Turns()
	if len(turns) != 3 {
		t.Fatalf("len = %d, want 3", len(turns))
	}
	if turns[0].Role != RoleUser || turns[0].Content != "hello" {
		t.Fatalf("first turn = %+v", turns[0])
	}
	if turns[1].Role != RoleModel || turns[1].Content != "hi there" {
		t.Fatalf("second turn = %+v", turns[1])
	}
	if turns[2].Content != "how are you" {
		t.Fatalf("third turn = %+v", turns[2])
	}
}

func TestBufferRequestUnbounded(t *testing.T) {
	b := NewBuffer(0)
	for i := 0; i < 25; i++ {
		b.Append(RoleUser, "u")
		b.Append(RoleModel, "m")
	}
	if got := len(b.Request()); got != 50 {
		t.Fatalf("Request() len = %d, want 50", got)
	}
}

func TestBufferRequestWindow(t *testing.T) {
	b := NewBuffer(4)
	b.Append(RoleUser, "one")
	b.Append(RoleModel, "two")
	b.Append(RoleUser, "three")
	b.Append(RoleModel, "four")
	b.Append(RoleUser, "five")

	req := b.Request()
	if len(req) != 4 {
		t.Fatalf("Request() len = %d, want 4", len(req))
	}
	if req[0].Content != "two" || req[3].Content != "five" {
		t.Fatalf("window should keep the trailing turns, got %+v", req)
	}
	// The full log is untouched by the window.
	if b.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", b.Len())
	}
}

func TestBufferOnAppendHook(t *testing.T) {
	b := NewBuffer(0)
	var seen []Turn
	b.SetOnAppend(func(turn Turn) { seen = append(seen, turn) })

	b.Append(RoleUser, "ping")
	b.Append(RoleModel, "pong")
	if len(seen) != 2 || seen[1].Role != RoleModel {
		t.Fatalf("hook saw %+v", seen)
	}
}
