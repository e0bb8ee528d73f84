package ordering

import "github.com/jhoicas/foodorder-api/internal/domain/entity"

// forward secuencia normal del pedido; cancelled es alcanzable desde cualquier estado previo a delivered.
var forward = []string{
	entity.OrderStatusPending,
	entity.OrderStatusConfirmed,
	entity.OrderStatusPreparing,
	entity.OrderStatusReady,
	entity.OrderStatusPickedUp,
	entity.OrderStatusDelivered,
}

// IsValidStatus indica si el estado existe.
func IsValidStatus(status string) bool {
	if status == entity.OrderStatusCancelled {
		return true
	}
	return indexOf(status) >= 0
}

// IsTerminal delivered y cancelled no admiten más cambios.
func IsTerminal(status string) bool {
	return status == entity.OrderStatusDelivered || status == entity.OrderStatusCancelled
}

// CanTransition solo permite avanzar un paso o cancelar antes de la entrega.
func CanTransition(from, to string) bool {
	if IsTerminal(from) || !IsValidStatus(from) {
		return false
	}
	if to == entity.OrderStatusCancelled {
		return true
	}
	i, j := indexOf(from), indexOf(to)
	return i >= 0 && j == i+1
}

// NextStatus estado siguiente en el flujo normal ("" si es terminal).
func NextStatus(from string) string {
	i := indexOf(from)
	if i < 0 || i == len(forward)-1 {
		return ""
	}
	return forward[i+1]
}

func indexOf(status string) int {
	for i, s := range forward {
		if s == status {
			return i
		}
	}
	return -1
}
