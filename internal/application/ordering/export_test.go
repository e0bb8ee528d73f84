package ordering

import "time"

// SetClock fija el reloj del caso de uso en tests.
func (uc *OrderUseCase) SetClock(now func() time.Time) {
	uc.now = now
}
