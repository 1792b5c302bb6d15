package domain

import "time"

// RemovedPosition значение position_in_queue для удаленных записей
// Такие записи исключаются из всех запросов ранжирования (position_in_queue > 0)
const RemovedPosition = 0

// WaitlistEntry запись листа ожидания - запрос на слип, который не удалось выдать сразу
// Инвариант: позиции активных записей образуют плотную последовательность 1..N
// без дубликатов и пропусков; поддерживается только менеджером очереди
type WaitlistEntry struct {
	ID            int64
	UserID        int64
	BoatID        int64
	PreferredSize int
	StartDate     time.Time
	EndDate       time.Time
	Position      int
	CreatedAt     time.Time
}

// IsRemoved возвращает true, если запись удалена из очереди
func (e *WaitlistEntry) IsRemoved() bool {
	return e.Position == RemovedPosition
}
