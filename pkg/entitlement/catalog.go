package entitlement

// PackageType is the billing period of a package.
type PackageType string

const (
	PackageMonthly  PackageType = "MONTHLY"
	PackageAnnual   PackageType = "ANNUAL"
	PackageLifetime PackageType = "LIFETIME"
)

// PremiumEntitlement is the identifier of the single entitlement granted by
// every package.
const PremiumEntitlement = "premium"

// StoreProduct describes the product behind a package.
type StoreProduct struct {
	ProductID            string `json:"productId" yaml:"productId"`
	LocalizedPriceString string `json:"localizedPriceString" yaml:"localizedPriceString"`
	ProductTitle         string `json:"productTitle" yaml:"productTitle"`
	ProductDescription   string `json:"productDescription" yaml:"productDescription"`
}

// Package is a purchasable plan.
type Package struct {
	Identifier   string       `json:"identifier" yaml:"identifier"`
	PackageType  PackageType  `json:"packageType" yaml:"packageType"`
	StoreProduct StoreProduct `json:"storeProduct" yaml:"storeProduct"`
}

// Offering groups the packages presented on the paywall.
type Offering struct {
	Identifier        string    `json:"identifier" yaml:"identifier"`
	ServerDescription string    `json:"serverDescription" yaml:"serverDescription"`
	AvailablePackages []Package `json:"availablePackages" yaml:"availablePackages"`
}

// Package returns the package with identifier.
func (o Offering) Package(identifier string) (Package, bool) {
	for _, p := range o.AvailablePackages {
		if p.Identifier == identifier {
			return p, true
		}
	}
	return Package{}, false
}

// EntitlementInfo is one active entitlement.
type EntitlementInfo struct {
	Identifier string `json:"identifier"`
	IsActive   bool   `json:"isActive"`
	WillRenew  bool   `json:"willRenew"`
}

// CustomerInfo is the entitlement view of the current user.
type CustomerInfo struct {
	Active map[string]EntitlementInfo `json:"active"`
}

// IsPremium reports whether the premium entitlement is active.
func (c CustomerInfo) IsPremium() bool {
	return c.Active[PremiumEntitlement].IsActive
}

func customerInfo(pro bool) CustomerInfo {
	info := CustomerInfo{Active: map[string]EntitlementInfo{}}
	if pro {
		info.Active[PremiumEntitlement] = EntitlementInfo{
			Identifier: PremiumEntitlement,
			IsActive:   true,
			WillRenew:  true,
		}
	}
	return info
}

// DefaultCatalog returns the static catalog: one offering with a monthly and
// an annual plan. The result is a fresh copy.
func DefaultCatalog() Offering {
	return Offering{
		Identifier:        "default",
		ServerDescription: "Default premium plans",
		AvailablePackages: []Package{
			{
				Identifier:  "monthly",
				PackageType: PackageMonthly,
				StoreProduct: StoreProduct{
					ProductID:            "com.ideastash.premium.monthly",
					LocalizedPriceString: "$4.99/mo",
					ProductTitle:         "Premium Monthly",
					ProductDescription:   "Unlock all premium features",
				},
			},
			{
				Identifier:  "annual",
				PackageType: PackageAnnual,
				StoreProduct: StoreProduct{
					ProductID:            "com.ideastash.premium.annual",
					LocalizedPriceString: "$39.99/yr",
					ProductTitle:         "Premium Annual",
					ProductDescription:   "Save 33% compared to monthly",
				},
			},
		},
	}
}
