package checkout

import (
	"strings"

	"github.com/belvieshop/checkout-service/internal/domain"
)

// MatchZone resolves a destination to the first active zone whose city list
// contains the city or whose country list contains the country. Matching is
// case-insensitive; callers must pass zones in a stable order (the repository
// returns them by ascending id). A zone covering a whole country matches any
// city within it, even one not listed separately. Returns nil when no zone
// matches.
func MatchZone(zones []domain.ShippingZone, city, country string) *domain.ShippingZone {
	city = strings.TrimSpace(city)
	country = strings.TrimSpace(country)

	for i := range zones {
		z := &zones[i]
		if !z.IsActive {
			continue
		}
		for _, c := range z.Cities {
			if strings.EqualFold(c, city) && city != "" {
				return z
			}
		}
		for _, c := range z.Countries {
			if strings.EqualFold(c, country) && country != "" {
				return z
			}
		}
	}
	return nil
}
