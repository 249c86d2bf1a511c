package service_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"moonlight/internal/modules/notify/domain"
	"moonlight/internal/modules/notify/service"
)

type staticStore struct {
	manifests []domain.Manifest
}

func (s staticStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct {
	notified []string
	err      error
}

func (h *fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return h.err }

func (h *fakeHost) GetMetadata(_ context.Context, m domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: m.Name, Version: m.Version, Capabilities: m.Capabilities}, nil
}

func (h *fakeHost) Notify(_ context.Context, m domain.Manifest, _ domain.Message) error {
	if h.err != nil {
		return h.err
	}
	h.notified = append(h.notified, m.Name)
	return nil
}

func writeBinary(t *testing.T, name string) (path, sum string) {
	t.Helper()
	path = filepath.Join(t.TempDir(), name)
	payload := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(path, payload, 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256(payload)
	return path, hex.EncodeToString(hash[:])
}

func manifest(t *testing.T, name string, enabled bool) domain.Manifest {
	t.Helper()
	path, sum := writeBinary(t, name)
	return domain.Manifest{
		Name:         name,
		Version:      "1.0.0",
		Binary:       path,
		SHA256:       sum,
		Enabled:      enabled,
		Capabilities: []domain.Capability{domain.CapabilityNotify},
	}
}

var message = domain.Message{Title: "Today's Tasks", Body: "You have 1 task(s) today: a"}

func TestSendDeliversInManifestOrder(t *testing.T) {
	t.Parallel()
	host := &fakeHost{}
	store := staticStore{manifests: []domain.Manifest{
		manifest(t, "first", true),
		manifest(t, "skipped", false),
		manifest(t, "second", true),
	}}
	svc := service.NewNotifyService(store, host, &bytes.Buffer{})

	report, err := svc.Send(context.Background(), message)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(report.Delivered) != 2 || report.Delivered[0] != "first" || report.Delivered[1] != "second" {
		t.Fatalf("delivered = %v", report.Delivered)
	}
	if report.Fallback {
		t.Fatal("fallback should not trigger with enabled notifiers")
	}
	if len(host.notified) != 2 {
		t.Fatalf("host notified %d times, want 2", len(host.notified))
	}
}

func TestSendFallsBackToWriter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	svc := service.NewNotifyService(staticStore{}, &fakeHost{}, &buf)

	report, err := svc.Send(context.Background(), message)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !report.Fallback {
		t.Fatal("expected fallback with no notifiers configured")
	}
	if got := buf.String(); got != "Today's Tasks: You have 1 task(s) today: a\n" {
		t.Fatalf("fallback output = %q", got)
	}
}

func TestSendRejectsTamperedBinary(t *testing.T) {
	t.Parallel()
	m := manifest(t, "tampered", true)
	if err := os.WriteFile(m.Binary, []byte("something else"), 0o755); err != nil {
		t.Fatalf("rewrite binary: %v", err)
	}
	svc := service.NewNotifyService(staticStore{manifests: []domain.Manifest{m}}, &fakeHost{}, &bytes.Buffer{})

	_, err := svc.Send(context.Background(), message)
	if !errors.Is(err, domain.ErrChecksumMismatch) {
		t.Fatalf("err = %v, want ErrChecksumMismatch", err)
	}
}

func TestSendRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	store := staticStore{manifests: []domain.Manifest{
		manifest(t, "dup", true),
		manifest(t, "dup", true),
	}}
	svc := service.NewNotifyService(store, &fakeHost{}, &bytes.Buffer{})
	if _, err := svc.Send(context.Background(), message); err == nil {
		t.Fatal("expected error for duplicate notifier names")
	}
}

func TestDoctorReportsBrokenBinary(t *testing.T) {
	t.Parallel()
	m := manifest(t, "ghost", true)
	if err := os.Remove(m.Binary); err != nil {
		t.Fatalf("remove binary: %v", err)
	}
	svc := service.NewNotifyService(staticStore{manifests: []domain.Manifest{m}}, &fakeHost{}, &bytes.Buffer{})

	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("Doctor: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].BinaryReachable || results[0].Error == "" {
		t.Fatalf("result = %+v, want unreachable binary flagged", results[0])
	}
}

func TestDoctorHealthy(t *testing.T) {
	t.Parallel()
	m := manifest(t, "healthy", true)
	svc := service.NewNotifyService(staticStore{manifests: []domain.Manifest{m}}, &fakeHost{}, &bytes.Buffer{})

	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("Doctor: %v", err)
	}
	r := results[0]
	if !r.BinaryReachable || !r.ChecksumValid || !r.LifecycleOK || r.Error != "" {
		t.Fatalf("result = %+v, want fully healthy", r)
	}
}
