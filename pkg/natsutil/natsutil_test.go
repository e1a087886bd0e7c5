package natsutil

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func startTestNATS(t *testing.T) (*natsserver.Server, *nats.Conn) {
	t.Helper()
	opts := &natsserver.Options{Port: -1}
	srv, err := natsserver.NewServer(opts)
	if err != nil {
		t.Fatal(err)
	}
	srv.Start()
	if !srv.ReadyForConnections(3 * time.Second) {
		t.Fatal("nats not ready")
	}
	nc, err := Connect(srv.ClientURL(), "natsutil-test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		nc.Close()
		srv.Shutdown()
	})
	return srv, nc
}

type delta struct {
	NewGear int64 `json:"new_gear"`
}

func TestHeaderCarrier(t *testing.T) {
	msg := &nats.Msg{Subject: "x"}
	c := (*headerCarrier)(msg)

	if c.Get("traceparent") != "" || c.Keys() != nil {
		t.Fatal("expected empty carrier")
	}
	c.Set("traceparent", "00-abc")
	if c.Get("traceparent") != "00-abc" {
		t.Fatalf("got %q", c.Get("traceparent"))
	}
	if keys := c.Keys(); len(keys) != 1 {
		t.Fatalf("expected one key, got %v", keys)
	}
}

func TestPublish(t *testing.T) {
	_, nc := startTestNATS(t)

	ch := make(chan *nats.Msg, 1)
	sub, err := nc.ChanSubscribe(SubjectStatsDelta, ch)
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Unsubscribe()

	if err := Publish(context.Background(), nc, SubjectStatsDelta, delta{NewGear: 3}); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-ch:
		var d delta
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			t.Fatal(err)
		}
		if d.NewGear != 3 {
			t.Fatalf("unexpected payload: %+v", d)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishPropagatesTrace(t *testing.T) {
	_, nc := startTestNATS(t)

	prop := propagation.TraceContext{}
	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	ch := make(chan *nats.Msg, 1)
	sub, err := nc.ChanSubscribe("trace.test", ch)
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Unsubscribe()

	msg := &nats.Msg{Subject: "trace.test", Data: []byte(`{}`)}
	prop.Inject(ctx, (*headerCarrier)(msg))
	if err := nc.PublishMsg(msg); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-ch:
		sc := trace.SpanContextFromContext(prop.Extract(context.Background(), (*headerCarrier)(got)))
		if sc.TraceID() != traceID {
			t.Fatalf("expected trace %s, got %s", traceID, sc.TraceID())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout")
	}
}

func TestSubscribe(t *testing.T) {
	_, nc := startTestNATS(t)

	ch := make(chan delta, 1)
	sub, err := Subscribe(nc, SubjectStatsDelta, func(ctx context.Context, d delta) {
		ch <- d
	})
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Unsubscribe()

	if err := Publish(context.Background(), nc, SubjectStatsDelta, delta{NewGear: 42}); err != nil {
		t.Fatal(err)
	}

	select {
	case d := <-ch:
		if d.NewGear != 42 {
			t.Fatalf("unexpected: %+v", d)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout")
	}
}

func TestSubscribeDropsMalformed(t *testing.T) {
	_, nc := startTestNATS(t)

	called := make(chan struct{}, 1)
	sub, err := Subscribe(nc, "stats.malformed", func(ctx context.Context, d delta) {
		called <- struct{}{}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Unsubscribe()

	nc.Publish("stats.malformed", []byte("{bad"))
	nc.Flush()

	select {
	case <-called:
		t.Fatal("handler should not be called for malformed data")
	case <-time.After(100 * time.Millisecond):
	}
}
