package domain

// PickupStatus is the off-chain state of a pickup.
type PickupStatus string

// List of pickup statuses in lifecycle order.
const (
	StatusPending   PickupStatus = "pending"
	StatusAssigned  PickupStatus = "assigned"
	StatusCompleted PickupStatus = "completed"
)

var statusRank = map[PickupStatus]int{
	StatusPending:   0,
	StatusAssigned:  1,
	StatusCompleted: 2,
}

// Valid checks if the PickupStatus is known.
func (s PickupStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo reports whether next is the single step after s.
// Transitions never skip a state and never move backward.
func (s PickupStatus) CanTransitionTo(next PickupStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to == from+1
}

// RequiresCourier reports whether a pickup in this status must carry a courier.
func (s PickupStatus) RequiresCourier() bool {
	return s == StatusAssigned || s == StatusCompleted
}

// Material is the recyclable category of a pickup.
type Material string

// List of accepted materials
const (
	MaterialPlastic     Material = "plastic"
	MaterialGlass       Material = "glass"
	MaterialPaper       Material = "paper"
	MaterialMetal       Material = "metal"
	MaterialElectronics Material = "electronics"
)

var allowedMaterials = [...]Material{
	MaterialPlastic, MaterialGlass, MaterialPaper, MaterialMetal, MaterialElectronics,
}

// Valid checks if the Material is one of the accepted categories
func (m Material) Valid() bool {
	for _, v := range allowedMaterials {
		if m == v {
			return true
		}
	}
	return false
}
