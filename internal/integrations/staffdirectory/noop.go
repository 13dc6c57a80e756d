package staffdirectory

import "context"

// NoopResolver используется, когда справочник сотрудников выключен в конфиге.
// Отображаемым именем продавца становится его логин.
type NoopResolver struct{}

func NewNoopResolver() *NoopResolver {
	return &NoopResolver{}
}

func (NoopResolver) ResolveDisplayName(_ context.Context, login string) string {
	return login
}
