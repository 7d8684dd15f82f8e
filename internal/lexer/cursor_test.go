package lexer

import (
	"testing"

	"flint/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.fl", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	file := createFile("a\nb")
	cursor := NewCursor(file)

	if cursor.EOF() {
		t.Error("expected not EOF at start")
	}
	if cursor.Peek() != 'a' {
		t.Errorf("expected peek 'a', got %c", cursor.Peek())
	}
	if b := cursor.Bump(); b != 'a' {
		t.Errorf("expected bump 'a', got %c", b)
	}
	if b := cursor.Bump(); b != '\n' {
		t.Errorf("expected bump newline, got %c", b)
	}
	if b := cursor.Bump(); b != 'b' {
		t.Errorf("expected bump 'b', got %c", b)
	}
	if !cursor.EOF() {
		t.Error("expected EOF after last byte")
	}
	if b := cursor.Bump(); b != 0 {
		t.Errorf("bump at EOF should return 0, got %d", b)
	}
}

func TestCursorPeek2(t *testing.T) {
	file := createFile("==")
	cursor := NewCursor(file)
	b0, b1, ok := cursor.Peek2()
	if !ok || b0 != '=' || b1 != '=' {
		t.Errorf("Peek2 = %c, %c, %v", b0, b1, ok)
	}
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Error("Peek2 with one byte left should report !ok")
	}
}

func TestCursorMarkAndSpan(t *testing.T) {
	file := createFile("hello world")
	cursor := NewCursor(file)
	for i := 0; i < 6; i++ {
		cursor.Bump()
	}
	m := cursor.Mark()
	for i := 0; i < 5; i++ {
		cursor.Bump()
	}
	sp := cursor.SpanFrom(m)
	if sp.Start != 6 || sp.End != 11 {
		t.Errorf("span = [%d,%d), want [6,11)", sp.Start, sp.End)
	}
	cursor.Reset(m)
	if cursor.Off != 6 {
		t.Errorf("Reset: Off = %d, want 6", cursor.Off)
	}
}

func TestCursorEat(t *testing.T) {
	file := createFile("ab")
	cursor := NewCursor(file)
	if cursor.Eat('b') {
		t.Error("Eat('b') should fail when 'a' is next")
	}
	if !cursor.Eat('a') {
		t.Error("Eat('a') should succeed")
	}
	if !cursor.Eat('b') {
		t.Error("Eat('b') should succeed")
	}
	if cursor.Eat('c') {
		t.Error("Eat at EOF should fail")
	}
}
