package service

import "DocKeeper/internal/model"

// Action — действие, запрашиваемое у оценщика прав.
type Action string

const (
	ActionView             Action = "view"
	ActionCreate           Action = "create"
	ActionEdit             Action = "edit"
	ActionDelete           Action = "delete"
	ActionManageCategories Action = "manage_categories"
	ActionManageUsers      Action = "manage_users"
)

// Target — объект действия; для edit/delete решение зависит от владельца.
type Target struct {
	OwnerID int64
}

// Can — чистая тотальная функция (роль, действие, цель) → разрешено/запрещено.
// Таблица решений:
//
//	admin    — всё;
//	manager  — всё, кроме manage_users;
//	member   — view/create всегда, edit/delete только над своим;
//	viewer   — только view;
//	пустая роль (нет профиля) — как member;
//	неизвестная роль или действие — запрет.
//
// Оценщик advisory на уровне маршрутов: для edit/delete фактическое
// принуждение — проверка владения в сервисе документов, независимо от роли.
func Can(role model.Role, actor int64, action Action, target *Target) bool {
	switch action {
	case ActionView, ActionCreate, ActionEdit, ActionDelete,
		ActionManageCategories, ActionManageUsers:
	default:
		return false
	}

	ownsTarget := target != nil && target.OwnerID == actor

	switch role {
	case model.RoleAdmin:
		return true
	case model.RoleManager:
		return action != ActionManageUsers
	case model.RoleMember, "":
		switch action {
		case ActionView, ActionCreate:
			return true
		case ActionEdit, ActionDelete:
			return ownsTarget
		default:
			return false
		}
	case model.RoleViewer:
		return action == ActionView
	default:
		return false
	}
}
