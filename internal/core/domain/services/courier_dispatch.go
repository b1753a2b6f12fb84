package services

import (
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

// CourierDispatch is a domain service that applies the delivery-assignment
// rules shared by shop-driven assignment and courier self-assignment.
//
// Business rules:
//   - the candidate must hold the courier role and be currently active
//   - the order must be ready for delivery and not yet assigned
//   - binding the courier and entering in_delivery happen as one step
//
// Example usage:
//
//	dispatch := services.NewCourierDispatch()
//	if err := dispatch.Assign(o, courier); err != nil {
//	    // candidate ineligible or order not assignable
//	}
type CourierDispatch struct{}

// NewCourierDispatch creates a new CourierDispatch instance.
func NewCourierDispatch() CourierDispatch {
	return CourierDispatch{}
}

// EnsureEligible validates that the candidate user may carry deliveries.
// Returns an invalid-value error naming the failing rule otherwise.
func (CourierDispatch) EnsureEligible(candidate *user.User) error {
	if err := candidate.Validate(); err != nil {
		return err
	}

	if candidate.Role() != user.RoleCourier {
		return errs.NewValueIsInvalidErrorWithCause("deliveryPerson",
			fmt.Errorf("user %s is not a courier", candidate.ID()))
	}

	if !candidate.Active() {
		return errs.NewValueIsInvalidErrorWithCause("deliveryPerson",
			fmt.Errorf("courier %s is not active", candidate.ID()))
	}

	return nil
}

// Assign checks the candidate's eligibility and binds them to the order,
// moving it into delivery. The order is unchanged on error.
func (d CourierDispatch) Assign(o *order.Order, candidate *user.User) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := d.EnsureEligible(candidate); err != nil {
		return err
	}

	return o.Assign(candidate.ID())
}
