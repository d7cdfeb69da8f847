package service

// Moscow metro lines used as a travel-convenience approximation.
// Station order matters: stop distance along a line stands in for
// travel time, so geocoordinates are not needed.
var metroLines = map[string][]string{
	"red": {
		"Сокольники", "Красносельская", "Комсомольская", "Красные Ворота",
		"Чистые пруды", "Лубянка", "Охотный Ряд", "Библиотека им. Ленина",
		"Кропоткинская", "Парк культуры", "Фрунзенская", "Спортивная",
		"Воробьёвы горы", "Университет", "Проспект Вернадского", "Юго-Западная",
	},
	"blue": {
		"Ховрино", "Беломорская", "Речной вокзал", "Водный стадион",
		"Войковская", "Сокол", "Аэропорт", "Динамо", "Белорусская",
		"Маяковская", "Тверская", "Театральная", "Новокузнецкая",
		"Павелецкая", "Автозаводская", "Технопарк", "Коломенская",
		"Каширская", "Кантемировская", "Царицыно", "Орехово",
		"Домодедовская", "Красногвардейская",
	},
	"green": {
		"Пятницкое шоссе", "Митино", "Волоколамская", "Мякинино",
		"Строгино", "Крылатское", "Молодёжная", "Кунцевская",
		"Славянский бульвар", "Парк Победы", "Киевская", "Смоленская",
		"Арбатская", "Площадь Революции", "Курская", "Бауманская",
		"Электрозаводская", "Семёновская", "Партизанская", "Измайловская",
		"Первомайская", "Щёлковская",
	},
	"lightblue": {
		"Фили", "Багратионовская", "Филёвский парк", "Пионерская", "Кунцевская",
	},
	"orange": {
		"Калужская", "Беляево", "Коньково", "Тёплый Стан", "Ясенево", "Новоясеневская",
	},
	"purple": {
		"Медведково", "Бабушкинская", "Свиблово", "Ботанический сад", "ВДНХ",
		"Алексеевская", "Рижская", "Проспект Мира", "Сухаревская", "Тургеневская",
		"Китай-город", "Третьяковская", "Октябрьская", "Шаболовская",
		"Ленинский проспект", "Академическая", "Профсоюзная", "Новые Черёмушки",
		"Калужская", "Беляево", "Коньково", "Тёплый Стан", "Ясенево",
		"Новоясеневская", "Битцевский парк",
	},
}

// stationStopDistance returns the number of stops between two stations
// that share a line. The second return value is false when the stations
// are on different lines or unknown.
func stationStopDistance(a, b string) (int, bool) {
	for _, stations := range metroLines {
		ai := stationIndex(stations, a)
		if ai == -1 {
			continue
		}
		bi := stationIndex(stations, b)
		if bi == -1 {
			continue
		}
		if ai > bi {
			return ai - bi, true
		}
		return bi - ai, true
	}
	return 0, false
}

func stationIndex(stations []string, name string) int {
	for i, s := range stations {
		if s == name {
			return i
		}
	}
	return -1
}

// MetroService exposes the metro line table to the API surface.
type MetroService struct{}

// NewMetroService creates a new metro service
func NewMetroService() *MetroService {
	return &MetroService{}
}

// Lines returns the full line table keyed by line name.
func (s *MetroService) Lines() map[string][]string {
	out := make(map[string][]string, len(metroLines))
	for line, stations := range metroLines {
		out[line] = append([]string(nil), stations...)
	}
	return out
}

// StopDistance returns the stop distance between two stations on the
// same line, or false when no shared line exists.
func (s *MetroService) StopDistance(a, b string) (int, bool) {
	return stationStopDistance(a, b)
}
