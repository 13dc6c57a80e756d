package domain

// CarModel модель автомобиля из тестового парка
// Закрытый каталог: модели не создаются и не удаляются в рантайме
type CarModel string

const (
	CarSealDynamic     CarModel = "BYD Seal Dynamic"
	CarSealPerformance CarModel = "BYD Seal Performance"
	CarAtto3           CarModel = "BYD Atto 3"
	CarDolphin         CarModel = "BYD Dolphin"
	CarSealion6        CarModel = "BYD Sealion 6 DM-i"
	CarSealion7        CarModel = "BYD Sealion 7"
	CarSeal5           CarModel = "BYD Seal 5 DM-i"
	CarM6              CarModel = "BYD M6"
)

// AllCarModels полный каталог тестового парка в порядке показа
var AllCarModels = []CarModel{
	CarSealDynamic,
	CarSealPerformance,
	CarAtto3,
	CarDolphin,
	CarSealion6,
	CarSealion7,
	CarSeal5,
	CarM6,
}

// IsValid проверяет принадлежность модели каталогу
func (m CarModel) IsValid() bool {
	for _, known := range AllCarModels {
		if m == known {
			return true
		}
	}
	return false
}

// ParseCarModel парсит модель автомобиля из входных данных
func ParseCarModel(s string) (CarModel, bool) {
	m := CarModel(s)
	return m, m.IsValid()
}

// Branch филиал дилерского центра
// Все заявки партиционированы по филиалу, взаимодействия между филиалами нет
type Branch string

const (
	BranchMahasarakham Branch = "mahasarakham"
	BranchKalasin      Branch = "kalasin"
)

// AllBranches закрытый список филиалов
var AllBranches = []Branch{
	BranchMahasarakham,
	BranchKalasin,
}

// IsValid проверяет принадлежность филиала списку
func (b Branch) IsValid() bool {
	for _, known := range AllBranches {
		if b == known {
			return true
		}
	}
	return false
}

// ParseBranch парсит филиал из входных данных
func ParseBranch(s string) (Branch, bool) {
	b := Branch(s)
	return b, b.IsValid()
}

// DisplayName возвращает тайское название филиала для UI
func (b Branch) DisplayName() string {
	switch b {
	case BranchMahasarakham:
		return "มหาสารคาม"
	case BranchKalasin:
		return "กาฬสินธุ์"
	default:
		return string(b)
	}
}
