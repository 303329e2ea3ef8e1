package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belvieshop/checkout-service/internal/domain"
)

func zone(name string, countries, cities []string, active bool) domain.ShippingZone {
	return domain.ShippingZone{
		ID:        uuid.New(),
		Name:      name,
		Countries: countries,
		Cities:    cities,
		IsActive:  active,
	}
}

func TestMatchZone(t *testing.T) {
	zones := []domain.ShippingZone{
		zone("Cotonou", nil, []string{"Cotonou", "Calavi"}, true),
		zone("Bénin national", []string{"Bénin"}, nil, true),
		zone("Afrique de l'Ouest", []string{"Togo", "Côte d'Ivoire", "Sénégal"}, nil, true),
	}

	tests := []struct {
		name     string
		city     string
		country  string
		wantZone string
	}{
		{"city match", "Cotonou", "Bénin", "Cotonou"},
		{"city match is case-insensitive", "cotonou", "", "Cotonou"},
		{"country covers unlisted city", "Parakou", "Bénin", "Bénin national"},
		{"country match is case-insensitive", "", "bénin", "Bénin national"},
		{"regional country match", "Lomé", "Togo", "Afrique de l'Ouest"},
		{"first zone in id order wins", "Calavi", "Bénin", "Cotonou"},
		{"whitespace trimmed", "  Cotonou  ", "", "Cotonou"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchZone(zones, tt.city, tt.country)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantZone, got.Name)
		})
	}
}

func TestMatchZoneNoMatch(t *testing.T) {
	zones := []domain.ShippingZone{
		zone("Bénin national", []string{"Bénin"}, []string{"Cotonou"}, true),
	}

	assert.Nil(t, MatchZone(zones, "Lagos", "Nigeria"))
	assert.Nil(t, MatchZone(zones, "", ""))
	assert.Nil(t, MatchZone(nil, "Cotonou", "Bénin"))
}

func TestMatchZoneSkipsInactive(t *testing.T) {
	zones := []domain.ShippingZone{
		zone("Suspendue", []string{"Bénin"}, nil, false),
		zone("Active", []string{"Bénin"}, nil, true),
	}

	got := MatchZone(zones, "Cotonou", "Bénin")
	require.NotNil(t, got)
	assert.Equal(t, "Active", got.Name)
}

func TestMatchZoneEmptyDestinationNeverMatchesEmptyEntry(t *testing.T) {
	// A zone row with an empty string in its lists must not swallow
	// destinations with a blank city or country.
	zones := []domain.ShippingZone{
		zone("Mal configurée", []string{""}, []string{""}, true),
	}

	assert.Nil(t, MatchZone(zones, "", "Bénin"))
	assert.Nil(t, MatchZone(zones, "Cotonou", ""))
}
