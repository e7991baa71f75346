package handlers

import "ecopickup/internal/domain"

func (req createPickupRequest) toModel() domain.NewPickup {
	return domain.NewPickup{
		UserID:         req.UserID,
		Material:       req.Material,
		WeightKg:       req.WeightKg,
		PickupLocation: req.PickupLocation,
		Address:        req.Address,
	}
}

func pickupToResponse(p domain.Pickup) pickupDTO {
	return pickupDTO{
		ID:              p.ID,
		UserID:          p.UserID,
		CourierID:       p.CourierID,
		Material:        p.Material,
		WeightKg:        p.WeightKg,
		Status:          p.Status,
		PickupLocation:  p.PickupLocation,
		DropoffLocation: p.Dropoff,
		Address:         p.Address,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func pickupsToResponse(list []domain.Pickup) []pickupDTO {
	out := make([]pickupDTO, 0, len(list))
	for _, p := range list {
		out = append(out, pickupToResponse(p))
	}
	return out
}

func blockchainToResponse(r domain.OnChainActionResult) blockchainDTO {
	dto := blockchainDTO{
		Enabled:           r.Enabled,
		UserRoleTx:        r.UserRoleTx,
		CourierRoleTx:     r.CourierRoleTx,
		PickupCreatedTx:   r.PickupCreatedTx,
		PickupAcceptedTx:  r.PickupAcceptedTx,
		PickupCompletedTx: r.PickupCompletedTx,
		RewardTx:          r.RewardTx,
	}
	if r.RewardAmount != nil {
		dto.RewardAmount = r.RewardAmount.String()
	}
	return dto
}

func assignResultToResponse(res domain.AssignResult) assignPickupResponse {
	return assignPickupResponse{
		Pickup:     pickupToResponse(res.Pickup),
		Blockchain: blockchainToResponse(res.Blockchain),
	}
}

func completeResultToResponse(res domain.CompleteResult) completePickupResponse {
	return completePickupResponse{
		Pickup:     pickupToResponse(res.Pickup),
		Blockchain: blockchainToResponse(res.Blockchain),
		Points:     res.Points,
		Carbon: carbonDTO{
			PickupID:          res.Carbon.PickupID,
			EstimatedSavingKg: res.Carbon.EstimatedSavingKg,
		},
	}
}
