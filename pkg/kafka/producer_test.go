package kafka

import "testing"

func TestNewProducer(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092", "localhost:9093"}})
	if p == nil {
		t.Fatal("expected non-nil producer")
	}
	if len(p.brokers) != 2 {
		t.Fatalf("brokers = %d, want 2", len(p.brokers))
	}
	if p.writers == nil || len(p.writers) != 0 {
		t.Fatalf("expected empty writers map, got %v", p.writers)
	}
}

func TestWriterForReusesWriter(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})

	a := p.writerFor("crest.calculator.events")
	b := p.writerFor("crest.calculator.events")
	if a != b {
		t.Error("expected the same writer for repeated topic")
	}
	if len(p.writers) != 1 {
		t.Errorf("writers = %d, want 1", len(p.writers))
	}

	c := p.writerFor("crest.other")
	if c == a {
		t.Error("expected distinct writer for a different topic")
	}
}

func TestCloseResetsWriters(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	p.writerFor("crest.calculator.events")

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if len(p.writers) != 0 {
		t.Errorf("writers after close = %d, want 0", len(p.writers))
	}
}
