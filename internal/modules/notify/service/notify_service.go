package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"moonlight/internal/modules/notify/domain"
	"moonlight/internal/modules/notify/dto"
	notifyout "moonlight/internal/modules/notify/port/out"
)

type NotifyService struct {
	store    notifyout.ManifestStore
	host     notifyout.Host
	fallback io.Writer
}

// NewNotifyService builds the dispatch service. fallback receives the
// message when no notifier is configured; pass os.Stderr in production.
func NewNotifyService(store notifyout.ManifestStore, host notifyout.Host, fallback io.Writer) *NotifyService {
	if fallback == nil {
		fallback = os.Stderr
	}
	return &NotifyService{store: store, host: host, fallback: fallback}
}

func (s *NotifyService) List(ctx context.Context) ([]dto.NotifierInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotifierInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.NotifierInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary})
	}
	return out, nil
}

func (s *NotifyService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

// Send delivers the message through every enabled notifier in manifest
// order. When none is configured the message goes to the fallback
// writer instead of being dropped.
func (s *NotifyService) Send(ctx context.Context, message domain.Message) (dto.SendReport, error) {
	if err := message.Validate(); err != nil {
		return dto.SendReport{}, err
	}
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return dto.SendReport{}, err
	}

	report := dto.SendReport{}
	for _, manifest := range manifests {
		if !manifest.Enabled {
			continue
		}
		if !manifest.HasCapability(domain.CapabilityNotify) {
			return dto.SendReport{}, fmt.Errorf("%w: %s", domain.ErrCapabilityMissing, manifest.Name)
		}
		if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
			return dto.SendReport{}, err
		}
		if err := s.host.Notify(ctx, manifest, message); err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return dto.SendReport{}, fmt.Errorf("%w: %s", domain.ErrNotifierTimeout, manifest.Name)
			}
			return dto.SendReport{}, fmt.Errorf("notify via %s: %w", manifest.Name, err)
		}
		report.Delivered = append(report.Delivered, manifest.Name)
	}

	if len(report.Delivered) == 0 {
		fmt.Fprintf(s.fallback, "%s: %s\n", message.Title, message.Body)
		report.Fallback = true
	}
	return report, nil
}

func (s *NotifyService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate notifier name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read notifier binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
