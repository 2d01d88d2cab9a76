package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/iudanet/starmap/internal/models"
)

// ValidateCoordinate проверяет нормализованную координату: конечное число в [0, 1]
func ValidateCoordinate(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a finite number", name)
	}
	if v < 0 || v > 1 {
		return fmt.Errorf("%s must be within [0, 1]", name)
	}
	return nil
}

// ValidateMarker checks a marker before it is written
func ValidateMarker(m *models.Marker) error {
	if strings.TrimSpace(m.Type) == "" {
		return fmt.Errorf("type is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if err := ValidateCoordinate("nx", m.NX); err != nil {
		return err
	}
	return ValidateCoordinate("ny", m.NY)
}

// NormalizeModule проверяет модуль и приводит поля отправителя к каноническому виду:
// у recv они очищаются, у send нулевое количество и пустые ссылки становятся nil
func NormalizeModule(m *models.Module) error {
	if !m.Kind.Valid() {
		return fmt.Errorf("kind must be send or recv")
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if m.BaseID == "" {
		return fmt.Errorf("base_id is required")
	}
	if m.ResourceID == "" {
		return fmt.Errorf("resource_id is required")
	}

	if !m.IsSend() {
		m.ClearSendFields()
		return nil
	}

	if m.Qty != nil {
		if *m.Qty < 0 {
			return fmt.Errorf("qty must not be negative")
		}
		if *m.Qty == 0 {
			m.Qty = nil
		}
	}

	m.DestBaseID = emptyToNil(m.DestBaseID)
	m.DestRecvID = emptyToNil(m.DestRecvID)

	if m.DestRecvID != nil && m.DestBaseID == nil {
		return fmt.Errorf("dest_recv_id requires dest_base_id")
	}
	if m.DestBaseID != nil && *m.DestBaseID == m.BaseID {
		return fmt.Errorf("dest_base_id must differ from base_id")
	}

	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
