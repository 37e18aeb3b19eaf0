package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/cache"
	domain "github.com/RodrigobSilva/PsicoCare-sub000/internal/domain/schedule"
)

// SlotCache acelera a consulta de horários livres. TTL curto: o cache é
// só conforto de leitura, a consistência de reserva vem do banco.
type SlotCache struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewSlotCache(c cache.Cache) *SlotCache {
	return &SlotCache{
		cache: c,
		ttl:   30 * time.Second,
	}
}

func slotKey(psychologistID uint, date string, granularityMin int) string {
	return fmt.Sprintf("slots:%d:%s:%d", psychologistID, date, granularityMin)
}

func (s *SlotCache) Get(ctx context.Context, psychologistID uint, date string, granularityMin int) ([]domain.Slot, bool) {
	raw, hit, err := s.cache.Get(ctx, slotKey(psychologistID, date, granularityMin))
	if err != nil || !hit {
		return nil, false
	}

	var slots []domain.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (s *SlotCache) Set(ctx context.Context, psychologistID uint, date string, granularityMin int, slots []domain.Slot) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, slotKey(psychologistID, date, granularityMin), raw, s.ttl)
}

// InvalidateDay derruba a entrada da granularidade padrão; as demais
// expiram sozinhas pelo TTL curto.
func (s *SlotCache) InvalidateDay(ctx context.Context, psychologistID uint, date string) {
	_ = s.cache.Delete(ctx, slotKey(psychologistID, date, domain.DefaultDurationMinutes))
}
