package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("creates_address_with_all_fields", func(t *testing.T) {
		geo := &kernel.GeoPoint{Lat: -33.4489, Lng: -70.6693}

		addr, err := kernel.NewAddress("Av. Italia 1439", "Providencia", "Santiago", "timbre 2B", geo)

		require.NoError(t, err)
		require.NoError(t, addr.Validate())
		assert.Equal(t, "Av. Italia 1439", addr.Street())
		assert.Equal(t, "Providencia", addr.Commune())
		assert.Equal(t, "Santiago", addr.City())
		assert.Equal(t, "timbre 2B", addr.Reference())
		require.NotNil(t, addr.Geo())
		assert.InDelta(t, -33.4489, addr.Geo().Lat, 0.0001)
	})

	t.Run("coordinates_and_reference_are_optional", func(t *testing.T) {
		addr, err := kernel.NewAddress("Calle Uno 10", "Centro", "Santiago", "", nil)

		require.NoError(t, err)
		assert.Nil(t, addr.Geo())
		assert.Empty(t, addr.Reference())
	})

	t.Run("requires_postal_fields", func(t *testing.T) {
		cases := []struct {
			name    string
			street  string
			commune string
			city    string
		}{
			{"missing_street", "", "Centro", "Santiago"},
			{"missing_commune", "Calle Uno 10", "", "Santiago"},
			{"missing_city", "Calle Uno 10", "Centro", ""},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewAddress(tc.street, tc.commune, tc.city, "", nil)

				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsRequired)
			})
		}
	})

	t.Run("rejects_out_of_range_coordinates", func(t *testing.T) {
		_, err := kernel.NewAddress("Calle Uno 10", "Centro", "Santiago", "",
			&kernel.GeoPoint{Lat: 120, Lng: 0})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("geo_accessor_returns_copy", func(t *testing.T) {
		geo := &kernel.GeoPoint{Lat: 1, Lng: 2}
		addr, err := kernel.NewAddress("Calle Uno 10", "Centro", "Santiago", "", geo)
		require.NoError(t, err)

		addr.Geo().Lat = 99

		assert.InDelta(t, 1.0, addr.Geo().Lat, 0.0001)
	})
}

func TestAddress_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var addr kernel.Address

		require.Error(t, addr.Validate())
	})
}

func TestNewMoney(t *testing.T) {
	t.Run("accepts_zero_and_positive", func(t *testing.T) {
		zero, err := kernel.NewMoney(0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), zero.Int64())

		price, err := kernel.NewMoney(1390)
		require.NoError(t, err)
		assert.Equal(t, int64(1390), price.Int64())
	})

	t.Run("rejects_negative", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	price, err := kernel.NewMoney(1390)
	require.NoError(t, err)

	assert.Equal(t, int64(2780), price.MulQuantity(2).Int64())
	assert.Equal(t, int64(1490), price.Add(kernel.Money(100)).Int64())
}
