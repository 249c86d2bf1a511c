package domain

import (
	"errors"
	"fmt"
	"regexp"
)

type Capability string

const CapabilityNotify Capability = "notify"

var (
	ErrNotifierDisabled  = errors.New("notifier is disabled")
	ErrChecksumMismatch  = errors.New("notifier checksum mismatch")
	ErrCapabilityMissing = errors.New("notifier capability missing")
	ErrNotifierTimeout   = errors.New("notifier timeout")
	ErrNoNotifiers       = errors.New("no enabled notifiers configured")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes one external notifier binary the host may launch.
type Manifest struct {
	Name         string       `yaml:"name"`
	Version      string       `yaml:"version"`
	Binary       string       `yaml:"binary"`
	SHA256       string       `yaml:"sha256"`
	Enabled      bool         `yaml:"enabled"`
	Capabilities []Capability `yaml:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("notifier name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("notifier version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("notifier binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("notifier sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("notifier capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityNotify:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// Message is one desktop notification.
type Message struct {
	Title string
	Body  string
}

func (m Message) Validate() error {
	if m.Title == "" {
		return fmt.Errorf("notification title is required")
	}
	if m.Body == "" {
		return fmt.Errorf("notification body is required")
	}
	return nil
}
