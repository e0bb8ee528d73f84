package ordering_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/foodorder-api/internal/domain/entity"
	"github.com/jhoicas/foodorder-api/internal/domain/ordering"
)

func TestCanTransition_FlujoNormal(t *testing.T) {
	steps := []string{
		entity.OrderStatusPending,
		entity.OrderStatusConfirmed,
		entity.OrderStatusPreparing,
		entity.OrderStatusReady,
		entity.OrderStatusPickedUp,
		entity.OrderStatusDelivered,
	}
	for i := 0; i < len(steps)-1; i++ {
		assert.True(t, ordering.CanTransition(steps[i], steps[i+1]), "%s -> %s", steps[i], steps[i+1])
		assert.Equal(t, steps[i+1], ordering.NextStatus(steps[i]))
	}
	assert.Empty(t, ordering.NextStatus(entity.OrderStatusDelivered))
}

func TestCanTransition_NoSaltaPasosNiRetrocede(t *testing.T) {
	assert.False(t, ordering.CanTransition(entity.OrderStatusPending, entity.OrderStatusReady))
	assert.False(t, ordering.CanTransition(entity.OrderStatusReady, entity.OrderStatusConfirmed))
	assert.False(t, ordering.CanTransition(entity.OrderStatusPending, entity.OrderStatusPending))
	assert.False(t, ordering.CanTransition(entity.OrderStatusPending, "lost"))
}

func TestCanTransition_Cancelacion(t *testing.T) {
	for _, from := range []string{
		entity.OrderStatusPending,
		entity.OrderStatusConfirmed,
		entity.OrderStatusPreparing,
		entity.OrderStatusReady,
		entity.OrderStatusPickedUp,
	} {
		assert.True(t, ordering.CanTransition(from, entity.OrderStatusCancelled), from)
	}
	assert.False(t, ordering.CanTransition(entity.OrderStatusDelivered, entity.OrderStatusCancelled))
	assert.False(t, ordering.CanTransition(entity.OrderStatusCancelled, entity.OrderStatusPending))
}
