package get_availability

import (
	"time"

	"github.com/rckarchitects/crashboard/internal/domain"
)

// Request модель запроса на вычисление доступности
type Request struct {
	UserID int64     // ID пользователя (ключ кэширования)
	From   time.Time // Начало окна сканирования (нулевое значение = окно по умолчанию)
	To     time.Time // Конец окна сканирования (исключительно)
}

// Response модель ответа со списком подходящих дней
type Response struct {
	From time.Time // Фактическое начало окна сканирования
	To   time.Time // Фактический конец окна сканирования
	Days []Day     // Подходящие дни в хронологическом порядке
}

// Day один день с доступными окнами для встреч
type Day struct {
	Date             time.Time             // Полночь дня в таймзоне сканирования
	Periods          []domain.TimeInterval // Свободные периоды в рабочих часах
	TotalFreeMinutes int                   // Суммарное свободное время в минутах
	Summary          string                // Компактный вид: "9am-midday, 2pm-5pm"
	Details          string                // Развернутый вид, по строке на период
}
