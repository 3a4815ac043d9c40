package ports

import "context"

// HealthProbe — дешёвая проверка живости защищаемой зависимости
// (например, SELECT 1 в Postgres). Любая ошибка трактуется как отказ.
type HealthProbe interface {
	Check(ctx context.Context) error
}
