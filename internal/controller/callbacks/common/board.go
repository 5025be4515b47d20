package common

import (
	"github.com/Freeeeeet/clinic_bot/internal/search"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

// BoardKey ключ копии списка записей в state
func BoardKey(viewer service.Viewer) string {
	return "board:" + string(viewer)
}

// LoadBoard копия списка записей экрана. reload перечитывает её из backend.
func LoadBoard(hc *HandlerContext, viewer service.Viewer, reload bool) (*service.Board, error) {
	if !reload {
		if board, ok := Data[*service.Board](hc, BoardKey(viewer)); ok {
			return board, nil
		}
	}

	list, err := hc.Handler.Appointments.List(hc.Ctx, viewer)
	if err != nil {
		return nil, err
	}
	board := service.NewBoard(list)
	hc.SetData(BoardKey(viewer), board)
	return board, nil
}

// FindAppointment запись из копии списка; при отсутствии список перечитывается один раз
func FindAppointment(hc *HandlerContext, viewer service.Viewer, id int64) (*service.Board, bool, error) {
	board, err := LoadBoard(hc, viewer, false)
	if err != nil {
		return nil, false, err
	}
	if _, ok := board.Find(id); ok {
		return board, true, nil
	}

	board, err = LoadBoard(hc, viewer, true)
	if err != nil {
		return nil, false, err
	}
	_, ok := board.Find(id)
	return board, ok, nil
}

// Criteria фильтры экрана по ключу
func Criteria(hc *HandlerContext, key string) search.Criteria {
	criteria, _ := Data[search.Criteria](hc, key)
	return criteria
}

// UpdateCriteria меняет фильтры экрана
func UpdateCriteria(hc *HandlerContext, key string, update func(*search.Criteria)) search.Criteria {
	criteria := Criteria(hc, key)
	update(&criteria)
	hc.SetData(key, criteria)
	return criteria
}

// ResetBoard забывает копию списка: следующий экран перечитает её
func ResetBoard(hc *HandlerContext, viewer service.Viewer) {
	hc.DeleteData(BoardKey(viewer))
}
