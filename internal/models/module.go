package models

import "time"

// ModuleKind направление модуля относительно его базы
type ModuleKind string

const (
	// ModuleSend отправитель ресурса: имеет количество и пункт назначения
	ModuleSend ModuleKind = "send"
	// ModuleRecv получатель ресурса: количество и назначение всегда пустые
	ModuleRecv ModuleKind = "recv"
)

// Valid reports whether k is send or recv.
func (k ModuleKind) Valid() bool {
	return k == ModuleSend || k == ModuleRecv
}

// Module представляет направленное ребро потока ресурсов, привязанное к базе.
// Для send-модуля DestBaseID/DestRecvID указывают на парный recv-модуль другой базы.
// Эта связь рекомендательная: внешним ключом не проверяется.
type Module struct {
	CreatedAt  time.Time  `json:"created_at"`   // время создания
	Qty        *int       `json:"qty"`          // количество, только для send
	DestBaseID *string    `json:"dest_base_id"` // база назначения, только для send
	DestRecvID *string    `json:"dest_recv_id"` // recv-модуль назначения, только для send
	ID         string     `json:"id"`           // UUID модуля
	Kind       ModuleKind `json:"kind"`         // send | recv
	Name       string     `json:"name"`         // название
	BaseID     string     `json:"base_id"`      // ID маркера-базы
	ResourceID string     `json:"resource_id"`  // ID ресурса из каталога
	CreatedBy  string     `json:"created_by"`   // ID пользователя-создателя
}

// IsSend reports whether the module is a sender.
func (m *Module) IsSend() bool {
	return m.Kind == ModuleSend
}

// ClearSendFields drops the fields that only a sender may carry.
func (m *Module) ClearSendFields() {
	m.Qty = nil
	m.DestBaseID = nil
	m.DestRecvID = nil
}

// ModuleUpdate изменение модуля. Kind и BaseID не меняются.
// Name и ResourceID сохраняются, если nil; поля отправителя заменяются целиком.
type ModuleUpdate struct {
	Name       *string
	ResourceID *string
	Qty        *int
	DestBaseID *string
	DestRecvID *string
}

// Apply copies u onto m.
func (u ModuleUpdate) Apply(m *Module) {
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.ResourceID != nil {
		m.ResourceID = *u.ResourceID
	}
	m.Qty = u.Qty
	m.DestBaseID = u.DestBaseID
	m.DestRecvID = u.DestRecvID
}
