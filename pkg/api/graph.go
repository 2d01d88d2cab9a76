package api

// CreateMarkerRequest запрос на создание маркера
type CreateMarkerRequest struct {
	NX          *float64 `json:"nx"`          // нормализованная координата X в [0, 1]
	NY          *float64 `json:"ny"`          // нормализованная координата Y в [0, 1]
	Type        string   `json:"type"`        // "base" или тип точки интереса
	Name        string   `json:"name"`        // название
	Description string   `json:"description"` // описание
}

// UpdateMarkerRequest частичное обновление маркера; тип не меняется
type UpdateMarkerRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	NX          *float64 `json:"nx"`
	NY          *float64 `json:"ny"`
}

// DeleteMarkerResponse ответ на удаление маркера
type DeleteMarkerResponse struct {
	OK             bool `json:"ok"`
	RemovedModules int  `json:"removed_modules"` // удаленные модули базы
}

// CreateModuleRequest запрос на создание модуля
type CreateModuleRequest struct {
	Qty        *int    `json:"qty"`          // только для send
	DestBaseID *string `json:"dest_base_id"` // только для send
	DestRecvID *string `json:"dest_recv_id"` // только для send
	Kind       string  `json:"kind"`         // send | recv
	Name       string  `json:"name"`
	BaseID     string  `json:"base_id"`
	ResourceID string  `json:"resource_id"`
}

// UpdateModuleRequest изменение модуля.
// name и resource_id сохраняются, если не переданы; qty и назначение заменяются целиком.
type UpdateModuleRequest struct {
	Name       *string `json:"name"`
	ResourceID *string `json:"resource_id"`
	Qty        *int    `json:"qty"`
	DestBaseID *string `json:"dest_base_id"`
	DestRecvID *string `json:"dest_recv_id"`
}
