package schedule

import (
	"math"
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
)

// SnapQuarter подбирает ближайшую четверть часа внутри ячейки часа
// для сырой позиции перетаскивания
//
// rawQuarter - позиция в единицах четвертей (0.0..4.0), вычисленная
// из пиксельного смещения курсора внутри ячейки. Из четырёх кандидатов
// (0, 1, 2, 3) выбирается ближайший; притяжение срабатывает, только если
// расстояние до него не превышает SnapThreshold четверти - иначе
// индикатор привязки не показывается
func SnapQuarter(rawQuarter float64) (int, bool) {
	nearest := 0
	minDistance := math.Inf(1)

	for q := 0; q < domain.QuartersPerHour; q++ {
		distance := math.Abs(rawQuarter - float64(q))
		if distance < minDistance {
			minDistance = distance
			nearest = q
		}
	}

	if minDistance > domain.SnapThreshold {
		return 0, false
	}

	return nearest, true
}

// SnapTime возвращает время начала, соответствующее притянутой четверти
// внутри ячейки часа cellStart
//
// Результат ещё должен пройти CanPlace: цель привязки, дающая пересечение,
// отклоняется вызывающей стороной и индикатор для неё не рисуется
func SnapTime(cellStart time.Time, rawQuarter float64) (time.Time, bool) {
	quarter, ok := SnapQuarter(rawQuarter)
	if !ok {
		return time.Time{}, false
	}

	y, m, d := cellStart.Date()
	hourStart := time.Date(y, m, d, cellStart.Hour(), 0, 0, 0, cellStart.Location())

	return hourStart.Add(time.Duration(quarter*domain.QuarterMinutes) * time.Minute), true
}
