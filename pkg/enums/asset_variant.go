package enums

// AssetVariant labels one of the canonical renditions generated per job.
type AssetVariant string

const (
	AssetVariantClassic AssetVariant = "classic"
	AssetVariantModern  AssetVariant = "modern"
	AssetVariantStudio  AssetVariant = "studio"
	AssetVariantOutdoor AssetVariant = "outdoor"
)

// AssetVariants returns the fixed generation set, in deterministic order.
func AssetVariants() []AssetVariant {
	return []AssetVariant{
		AssetVariantClassic,
		AssetVariantModern,
		AssetVariantStudio,
		AssetVariantOutdoor,
	}
}

// String implements fmt.Stringer.
func (a AssetVariant) String() string {
	return string(a)
}
