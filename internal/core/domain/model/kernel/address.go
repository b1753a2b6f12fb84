package kernel

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly
// initialized Address. Addresses must be created via NewAddress to ensure the
// required postal fields are present.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// GeoPoint holds optional WGS84 coordinates attached to a delivery address.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Validate checks that the coordinates fall inside the valid WGS84 ranges.
func (g GeoPoint) Validate() error {
	if g.Lat < -90 || g.Lat > 90 {
		return errs.NewValueIsInvalidErrorWithCause("lat",
			fmt.Errorf("%f is outside [-90, 90]", g.Lat))
	}
	if g.Lng < -180 || g.Lng > 180 {
		return errs.NewValueIsInvalidErrorWithCause("lng",
			fmt.Errorf("%f is outside [-180, 180]", g.Lng))
	}

	return nil
}

// Address represents a validated delivery destination.
// It is an immutable value object: street, commune, and city are required
// postal fields, while coordinates and the free-text reference note are
// optional. The zero value is invalid - use NewAddress.
//
// Example:
//
//	addr, err := kernel.NewAddress("Av. Italia 1439", "Providencia", "Santiago", "timbre 2B", nil)
//	if err != nil {
//	    // a required field was missing
//	}
type Address struct { //nolint:recvcheck //using for validation
	street    string
	commune   string
	city      string
	reference string
	geo       *GeoPoint

	guard guard.ConstructorGuard
}

// NewAddress creates a validated Address.
// street, commune, and city must be non-empty; reference and geo are optional.
func NewAddress(street, commune, city, reference string, geo *GeoPoint) (Address, error) {
	addr := Address{
		reference: reference,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addr.setStreet(street),
		addr.setCommune(commune),
		addr.setCity(city),
		addr.setGeo(geo),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Validate checks that the Address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// Commune returns the commune (district) of the address.
func (a Address) Commune() string {
	return a.commune
}

// City returns the city of the address.
func (a Address) City() string {
	return a.city
}

// Reference returns the optional free-text note helping the courier find the door.
func (a Address) Reference() string {
	return a.reference
}

// Geo returns the optional coordinates of the address, or nil.
func (a Address) Geo() *GeoPoint {
	if a.geo == nil {
		return nil
	}

	g := *a.geo
	return &g
}

// String renders the address as a single line.
func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s", a.street, a.commune, a.city)
}

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setCommune(commune string) error {
	if commune == "" {
		return errs.NewValueIsRequiredError("commune")
	}
	a.commune = commune
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setGeo(geo *GeoPoint) error {
	if geo == nil {
		return nil
	}

	if err := geo.Validate(); err != nil {
		return err
	}

	g := *geo
	a.geo = &g
	return nil
}
