package entity

type OrderStatus string

const (
	OrderPlaced    OrderStatus = "Placed"
	OrderReady     OrderStatus = "Ready"
	OrderCollected OrderStatus = "Collected"
	OrderCancelled OrderStatus = "Cancelled"
)

// CanMoveTo reports whether s -> to is a legal transition.
func (s OrderStatus) CanMoveTo(to OrderStatus) bool {
	switch to {
	case OrderReady:
		return s == OrderPlaced
	case OrderCollected:
		return s == OrderReady
	case OrderCancelled:
		return s == OrderPlaced || s == OrderReady
	}
	return false
}

// Sources คืนสถานะต้นทางที่ย้ายมา s ได้ (ใช้ใน guarded update)
func (s OrderStatus) Sources() []OrderStatus {
	var out []OrderStatus
	for _, from := range []OrderStatus{OrderPlaced, OrderReady, OrderCollected, OrderCancelled} {
		if from.CanMoveTo(s) {
			out = append(out, from)
		}
	}
	return out
}
