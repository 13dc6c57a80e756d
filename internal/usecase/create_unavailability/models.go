package create_unavailability

import (
	"time"

	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	"github.com/tawanchai/BYD-TestDriveService/pkg/types"
)

// Request модель запроса на блокировку автомобиля
type Request struct {
	Branch    domain.Branch   // Филиал
	Date      time.Time       // Дата блокировки (без времени)
	CarModel  domain.CarModel // Модель автомобиля
	Period    domain.Period   // morning / afternoon / all-day
	Reason    *string         // Причина (опционально)
	CreatedBy string          // Аутентифицированный актор
}

// Response модель ответа с созданной блокировкой
type Response struct {
	ID        int64
	Branch    domain.Branch
	Date      time.Time
	CarModel  domain.CarModel
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    *string
	CreatedBy string
	CreatedAt time.Time
}
