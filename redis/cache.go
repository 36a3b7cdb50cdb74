package redis

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/medbook/clinic-app/scheduling"
)

const (
	slotCacheTTL = 2 * time.Minute
	otpTTL       = 10 * time.Minute
)

// slotGranularities are the slot lengths the grid endpoint offers; an
// invalidation has to drop every one of them.
var slotGranularities = []int{30, 60}

// The grid depends on the slot length, so the key carries it: a
// 30-minute fill must never answer a 60-minute request.
func slotKey(doctorID uint, date string, minutes int) string {
	return fmt.Sprintf("slots:%d:%s:%d", doctorID, date, minutes)
}

// GetSlotGrid returns the cached grid for a doctor+date+granularity, or
// false when the entry is missing or stale.
func GetSlotGrid(doctorID uint, date string, minutes int) (scheduling.Grid, bool) {
	if Client == nil {
		return scheduling.Grid{}, false
	}
	raw, err := Client.Get(Ctx, slotKey(doctorID, date, minutes)).Bytes()
	if err != nil {
		return scheduling.Grid{}, false
	}
	var grid scheduling.Grid
	if err := json.Unmarshal(raw, &grid); err != nil {
		return scheduling.Grid{}, false
	}
	return grid, true
}

func SetSlotGrid(doctorID uint, date string, minutes int, grid scheduling.Grid) {
	if Client == nil {
		return
	}
	raw, err := json.Marshal(grid)
	if err != nil {
		return
	}
	Client.Set(Ctx, slotKey(doctorID, date, minutes), raw, slotCacheTTL)
}

// InvalidateSlots drops the cached grids after a booking or cancellation
// changes the doctor's day.
func InvalidateSlots(doctorID uint, date string) {
	if Client == nil {
		return
	}
	for _, minutes := range slotGranularities {
		Client.Del(Ctx, slotKey(doctorID, date, minutes))
	}
}

func otpKey(email string) string {
	return "reset-otp:" + email
}

// StoreResetOTP keeps the password-reset code server-side with a TTL so
// codes expire without a DB column cleanup.
func StoreResetOTP(email, otp string) error {
	return Client.Set(Ctx, otpKey(email), otp, otpTTL).Err()
}

// CheckResetOTP consumes the code on a successful match.
func CheckResetOTP(email, otp string) bool {
	stored, err := Client.Get(Ctx, otpKey(email)).Result()
	if err != nil || stored != otp {
		return false
	}
	Client.Del(Ctx, otpKey(email))
	return true
}
