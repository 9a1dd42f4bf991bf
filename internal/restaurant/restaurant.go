package restaurant

import "context"

// Restaurant — запись в хранилище. ID назначает Store при сохранении.
type Restaurant struct {
	ID          int64
	Name        string
	Address     string
	City        string
	Description string
}

// Dto — то, что уходит клиенту и приходит от него.
// Сейчас поля совпадают с Restaurant один в один, но JSON-схема от схемы хранения не зависит.
type Dto struct {
	ID                    int64  `json:"id"`
	Name                  string `json:"name"`
	Address               string `json:"address"`
	City                  string `json:"city"`
	RestaurantDescription string `json:"restaurantDescription"`
}

// Store — внешнее хранилище ресторанов. Реализации должны быть безопасны
// для конкурентного использования.
type Store interface {
	ListAll(ctx context.Context) ([]Restaurant, error)
	// Save присваивает ID, если он нулевой, и возвращает сохранённую запись.
	Save(ctx context.Context, r Restaurant) (Restaurant, error)
	// FindByID: ok=false — записи нет, это не ошибка.
	FindByID(ctx context.Context, id int64) (r Restaurant, ok bool, err error)
}
