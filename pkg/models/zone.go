package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/aseertime/pkg/money"
	"github.com/example/aseertime/pkg/schedule"
)

type DeliveryZone struct {
	ID            string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name          string        `gorm:"type:varchar(100);not null" json:"name"`
	BranchID      string        `gorm:"type:varchar(36);index" json:"branchId"`
	DeliveryFee   money.Amount  `json:"deliveryFee"`
	MinimumOrder  money.Amount  `json:"minimumOrder"`
	DeliveryTime  int           `json:"deliveryTime"` // minutes
	IsActive      bool          `gorm:"not null" json:"isActive"`
	DeliveryHours DeliveryHours `gorm:"type:text;serializer:json" json:"deliveryHours"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (DeliveryZone) TableName() string {
	return "delivery_zones"
}

func (z DeliveryZone) Key() string { return z.ID }

// DeliveryDayHours uses from/to where branch hours use open/close.
type DeliveryDayHours struct {
	IsOpen bool   `json:"isOpen"`
	From   string `json:"from"`
	To     string `json:"to"`
}

type DeliveryHours map[time.Weekday]DeliveryDayHours

// Weekly converts delivery hours into the evaluator's schedule.
func (h DeliveryHours) Weekly() schedule.Weekly {
	w := make(schedule.Weekly, len(h))
	for d, dh := range h {
		w[d] = schedule.Window{IsOpen: dh.IsOpen, Open: dh.From, Close: dh.To}
	}
	return w
}

// EveryDay returns delivery hours using the same window for all seven days.
func EveryDay(from, to string) DeliveryHours {
	h := make(DeliveryHours, 7)
	for _, d := range schedule.Days() {
		h[d] = DeliveryDayHours{IsOpen: true, From: from, To: to}
	}
	return h
}

func (h DeliveryHours) MarshalJSON() ([]byte, error) {
	out := make(map[string]DeliveryDayHours, len(h))
	for d, dh := range h {
		out[schedule.DayKey(d)] = dh
	}
	return json.Marshal(out)
}

func (h *DeliveryHours) UnmarshalJSON(data []byte) error {
	var in map[string]DeliveryDayHours
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	out := make(DeliveryHours, len(in))
	for k, dh := range in {
		d, ok := schedule.ParseDay(k)
		if !ok {
			return fmt.Errorf("unknown weekday %q", k)
		}
		out[d] = dh
	}
	*h = out
	return nil
}
