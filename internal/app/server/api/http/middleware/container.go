package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Container накапливает huma-мидлвари для очередной группы операций
type Container struct {
	huma.Middlewares
}

func NewContainer() *Container {
	return &Container{
		Middlewares: make(huma.Middlewares, 0),
	}
}

// Add добавляет мидлвари в порядке вызова и возвращает контейнер для цепочки
func (mc *Container) Add(mws ...func(ctx huma.Context, next func(huma.Context))) *Container {
	mc.Middlewares = append(mc.Middlewares, mws...)
	return mc
}

// GetAllAndClear возвращает накопленные мидлвари и очищает список
func (mc *Container) GetAllAndClear() huma.Middlewares {
	result := mc.Middlewares
	mc.Middlewares = nil
	return result
}
