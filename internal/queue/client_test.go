package queue

import (
	"testing"

	"github.com/papelaria-next/internal/config"
)

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueOrderNotify(OrderNotifyPayload{OrderID: 1, TenantID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.EnqueueImageWarm(ImageWarmPayload{URLs: []string{"https://i.ibb.co/a.jpg"}}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.EnqueueCartSessionGC(0); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatalf("nil client should be disabled")
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380})
	if opt.Addr != "redis:6380" {
		t.Fatalf("addr want redis:6380 got %s", opt.Addr)
	}
	if cfg.Concurrency != 10 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}

func TestNewOrderNotifyTaskType(t *testing.T) {
	task, err := NewOrderNotifyTask(OrderNotifyPayload{OrderID: 7, TenantID: 2})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskOrderNotify || string(task.Payload()) != `{"order_id":7,"tenant_id":2}` {
		t.Fatalf("unexpected task: %s %s", task.Type(), task.Payload())
	}
}
