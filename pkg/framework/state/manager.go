// Package state saves and restores parameter values keyed by serialization tag.
package state

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/justyntemme/synthparam/pkg/framework/param"
)

const (
	magic          = "SYNPRM"
	currentVersion = 1
)

// ErrInvalidFormat is returned when the data does not start with the state header.
var ErrInvalidFormat = errors.New("state: invalid format")

// CustomSaveFunc writes state beyond the parameters.
type CustomSaveFunc func(w io.Writer) error

// CustomLoadFunc reads what the matching CustomSaveFunc wrote.
type CustomLoadFunc func(r io.Reader) error

// Manager handles plugin state saving and loading
type Manager struct {
	version    uint32
	registry   *param.Registry
	customSave CustomSaveFunc
	customLoad CustomLoadFunc
}

// NewManager creates a new state manager
func NewManager(registry *param.Registry) *Manager {
	return &Manager{
		version:  currentVersion,
		registry: registry,
	}
}

// SetCustomState sets the hooks for state that is not a parameter.
func (m *Manager) SetCustomState(save CustomSaveFunc, load CustomLoadFunc) {
	m.customSave = save
	m.customLoad = load
}

// Save writes the raw value of every registered parameter.
func (m *Manager) Save(w io.Writer) error {
	if _, err := io.WriteString(w, magic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, m.version); err != nil {
		return err
	}

	params := m.registry.All()
	if err := binary.Write(w, binary.LittleEndian, uint32(len(params))); err != nil {
		return err
	}

	for _, p := range params {
		tag := p.Tag()
		if len(tag) > math.MaxUint16 {
			return fmt.Errorf("state: tag too long: %d bytes", len(tag))
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(len(tag))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, tag); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, p.Get()); err != nil {
			return err
		}
	}

	if m.customSave == nil {
		return binary.Write(w, binary.LittleEndian, uint32(0))
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(1)); err != nil {
		return err
	}
	return m.customSave(w)
}

// Load restores parameter values through SetHostRaw, so they are validated, the
// UI sees them as dirty and no listener fires. Unknown tags are skipped.
func (m *Manager) Load(r io.Reader) error {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return err
	}
	if string(header) != magic {
		return ErrInvalidFormat
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return err
	}
	if version > m.version {
		return fmt.Errorf("state version %d is newer than supported version %d", version, m.version)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return err
	}

	restored := 0
	for i := uint32(0); i < count; i++ {
		var n uint16
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return err
		}
		tag := make([]byte, n)
		if _, err := io.ReadFull(r, tag); err != nil {
			return err
		}
		var value float64
		if err := binary.Read(r, binary.LittleEndian, &value); err != nil {
			return err
		}

		p := m.registry.Get(string(tag))
		if p == nil {
			logrus.WithFields(logrus.Fields{
				"function": "Load",
				"tag":      string(tag),
			}).Warn("Skipping unknown parameter in saved state")
			continue
		}
		p.SetHostRaw(value)
		restored++
	}

	logrus.WithFields(logrus.Fields{
		"function": "Load",
		"version":  version,
		"stored":   count,
		"restored": restored,
	}).Debug("State loaded")

	var hasCustom uint32
	if err := binary.Read(r, binary.LittleEndian, &hasCustom); err != nil {
		return err
	}
	if hasCustom == 0 {
		return nil
	}
	if m.customLoad == nil {
		logrus.WithFields(logrus.Fields{
			"function": "Load",
		}).Warn("Saved state has custom data but no loader is set")
		return nil
	}
	return m.customLoad(r)
}
