package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/apptbook/appointment-service/internal/domain"
)

var (
	// ErrCacheMiss возвращается, когда ключ отсутствует в кеше
	ErrCacheMiss = errors.New("schedule.cache: cache miss")

	// ErrCacheUnavailable возвращается при ошибках обращения к Redis
	ErrCacheUnavailable = errors.New("schedule.cache: cache unavailable")
)

// ScheduleCache кеш дневных расписаний поверх Redis
// Ключ - аккаунт+дата, значение - сериализованный список записей дня.
// Инвалидация выполняется при любой мутации записей на этой дате
type ScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScheduleCache создает кеш дневных расписаний
func NewScheduleCache(client *redis.Client, ttl time.Duration) *ScheduleCache {
	return &ScheduleCache{client: client, ttl: ttl}
}

// GetDay возвращает закешированный список записей на дату
func (c *ScheduleCache) GetDay(ctx context.Context, userID int64, date time.Time) ([]*domain.Appointment, error) {
	payload, err := c.client.Get(ctx, dayKey(userID, date)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDay - redis get: %v", ErrCacheUnavailable, err)
	}

	var appointments []*domain.Appointment
	if err := json.Unmarshal(payload, &appointments); err != nil {
		// Повреждённое значение равносильно промаху
		return nil, ErrCacheMiss
	}

	return appointments, nil
}

// SetDay сохраняет список записей на дату
func (c *ScheduleCache) SetDay(ctx context.Context, userID int64, date time.Time, appointments []*domain.Appointment) error {
	payload, err := json.Marshal(appointments)
	if err != nil {
		return fmt.Errorf("%w: SetDay - marshal appointments: %v", ErrCacheUnavailable, err)
	}

	if err := c.client.Set(ctx, dayKey(userID, date), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: SetDay - redis set: %v", ErrCacheUnavailable, err)
	}

	return nil
}

// InvalidateDay сбрасывает кеш расписания на дату
func (c *ScheduleCache) InvalidateDay(ctx context.Context, userID int64, date time.Time) error {
	if err := c.client.Del(ctx, dayKey(userID, date)).Err(); err != nil {
		return fmt.Errorf("%w: InvalidateDay - redis del: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// InvalidateDays сбрасывает кеш расписания сразу для нескольких дат
// Используется при переносе записи на другой день: сбрасываются обе даты
func (c *ScheduleCache) InvalidateDays(ctx context.Context, userID int64, dates ...time.Time) error {
	if len(dates) == 0 {
		return nil
	}

	keys := make([]string, 0, len(dates))
	for _, date := range dates {
		keys = append(keys, dayKey(userID, date))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: InvalidateDays - redis del: %v", ErrCacheUnavailable, err)
	}

	return nil
}

func dayKey(userID int64, date time.Time) string {
	return fmt.Sprintf("schedule:%d:%s", userID, date.Format(domain.DateFormat))
}
