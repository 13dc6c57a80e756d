package create_booking

import (
	"time"

	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	"github.com/tawanchai/BYD-TestDriveService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Branch       domain.Branch    // Филиал
	Date         time.Time        // Дата тест-драйва (без времени)
	TimeSlot     types.TimeString // Слот (например, "10:00")
	CarModel     domain.CarModel  // Модель автомобиля
	CustomerName string           // Имя клиента
	PhoneNumber  *string          // Телефон (опционально)
	Salesperson  string           // Логин продавца
	Notes        *string          // Заметки (опционально)
	CreatedBy    string           // Аутентифицированный актор (из заголовка)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           int64
	Branch       domain.Branch
	Date         time.Time
	TimeSlot     types.TimeString
	CarModel     domain.CarModel
	CustomerName string
	PhoneNumber  *string
	Salesperson  string // Отображаемое имя продавца
	Notes        *string
	CreatedBy    string
	CreatedAt    time.Time
}
