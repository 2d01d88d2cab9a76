package models

import "time"

// MarkerTypeBase тип маркера, к которому можно привязывать модули
const MarkerTypeBase = "base"

// Marker представляет точку на карте (база или точка интереса).
// Координаты нормализованы в диапазон [0, 1] относительно размеров карты.
type Marker struct {
	CreatedAt   time.Time `json:"created_at"`  // время создания
	UpdatedAt   time.Time `json:"updated_at"`  // время последнего изменения
	ID          string    `json:"id"`          // UUID маркера
	Type        string    `json:"type"`        // тип: "base" или произвольный POI
	Name        string    `json:"name"`        // название
	Description string    `json:"description"` // описание
	CreatedBy   string    `json:"created_by"`  // ID пользователя-создателя
	NX          float64   `json:"nx"`          // нормализованная координата X
	NY          float64   `json:"ny"`          // нормализованная координата Y
}

// IsBase reports whether modules may be attached to the marker.
func (m *Marker) IsBase() bool {
	return m.Type == MarkerTypeBase
}

// MarkerPatch частичное обновление маркера; тип не меняется
type MarkerPatch struct {
	Name        *string
	Description *string
	NX          *float64
	NY          *float64
}

// Apply copies the set fields of p onto m.
func (p MarkerPatch) Apply(m *Marker) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.NX != nil {
		m.NX = *p.NX
	}
	if p.NY != nil {
		m.NY = *p.NY
	}
}
