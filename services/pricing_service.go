// services/pricing_service.go
package services

import (
	"log"
	"strings"

	"gorm.io/gorm"

	"salonbook-backend/models"
)

// PriceMap holds the resolved price for every service id in the catalog,
// for one branch (or the branch-agnostic defaults).
type PriceMap map[string]float64

// Get returns the resolved price for a service id, 0 for unknown ids.
func (m PriceMap) Get(serviceID string) float64 {
	return m[serviceID]
}

// Total sums resolved prices across the selected pairs. Order-independent;
// each occurrence counts once. Stylist assignment does not affect price.
func (m PriceMap) Total(pairs []models.ServiceStylistPair) float64 {
	total := 0.0
	for _, pair := range pairs {
		total += m.Get(pair.ServiceID)
	}
	return total
}

type PricingService struct {
	db *gorm.DB
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{db: db}
}

// BranchPrice resolves the price to charge for a service at a branch. If the
// service carries positionally aligned Branches/Prices arrays and the branch
// id appears in Branches, the price at the same index wins; in every other
// case the scalar default price applies (0 when that is also absent).
func BranchPrice(service models.Service, branchID string) float64 {
	if len(service.Prices) > 0 && len(service.Branches) > 0 &&
		strings.TrimSpace(branchID) != "" {
		for i, id := range service.Branches {
			if id == branchID {
				if i < len(service.Prices) {
					return service.Prices[i]
				}
				break
			}
		}
	}
	return service.Price
}

// ResolvePrice looks up a service and resolves its branch price. Lookup
// failures map to 0 and never propagate, so a total is never blocked; the
// swallowed error is logged because a failed lookup is otherwise
// indistinguishable from a genuinely free service.
func (s *PricingService) ResolvePrice(serviceID, branchID string) float64 {
	var service models.Service
	if err := s.db.First(&service, "id = ?", serviceID).Error; err != nil {
		log.Printf("[PRICING] price lookup failed for service %s: %v (using 0)", serviceID, err)
		return 0
	}
	return BranchPrice(service, branchID)
}

// PriceMap builds the full service-id -> resolved-price mapping for a branch.
// Rebuilt on every call; there is deliberately no cross-request cache.
func (s *PricingService) PriceMap(branchID string) PriceMap {
	var catalog []models.Service
	if err := s.db.Find(&catalog).Error; err != nil {
		log.Printf("[PRICING] catalog scan failed: %v (empty price map)", err)
		return PriceMap{}
	}

	pricing := make(PriceMap, len(catalog))
	for _, service := range catalog {
		pricing[service.ID.String()] = BranchPrice(service, branchID)
	}
	return pricing
}

// DefaultPriceMap builds branch-agnostic pricing for clients with no fixed
// branch: the first positional price if present, else the scalar default.
// Used as a fallback display value, not a committed price.
func (s *PricingService) DefaultPriceMap() PriceMap {
	var catalog []models.Service
	if err := s.db.Find(&catalog).Error; err != nil {
		log.Printf("[PRICING] catalog scan failed: %v (empty price map)", err)
		return PriceMap{}
	}

	pricing := make(PriceMap, len(catalog))
	for _, service := range catalog {
		price := service.Price
		if len(service.Prices) > 0 {
			price = service.Prices[0]
		}
		pricing[service.ID.String()] = price
	}
	return pricing
}

// PriceMapFor picks the branch-specific map when a branch is known and the
// branch-agnostic defaults otherwise.
func (s *PricingService) PriceMapFor(branchID string) PriceMap {
	if strings.TrimSpace(branchID) == "" {
		return s.DefaultPriceMap()
	}
	return s.PriceMap(branchID)
}
