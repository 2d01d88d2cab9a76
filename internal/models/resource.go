package models

// Resource элемент справочника ресурсов.
// Используется только как внешний справочник для Module.ResourceID.
type Resource struct {
	ID        string `json:"id"`         // строковый идентификатор (например, "wolfram-ore")
	Label     string `json:"label"`      // отображаемое название
	Category  string `json:"category"`   // категория для группировки
	Color     string `json:"color"`      // цвет в формате #rrggbb
	SortOrder int    `json:"sort_order"` // порядок сортировки
}
