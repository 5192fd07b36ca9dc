package driver

// Provider lookup templates. Exactly one is chosen per request; only $id,
// $skip and $limit are bound. The relationship patterns are undirected and
// untyped until the graph schema pins them down.
const (
	ProviderWithProductsAndFirmsQuery = `
		MATCH (n:ProviderIndividual {providerIndividualID: $id})
		OPTIONAL MATCH (n)--(p:Products)
		OPTIONAL MATCH (n)--(l:LifeScienceFirm)
		RETURN coalesce(n.display_name, '') AS display_name,
			coalesce(p.product_name, '') AS product_name,
			coalesce(l.life_science_firm_name, '') AS life_science_firm_name
		SKIP $skip
		LIMIT $limit
	`

	ProviderWithProductsQuery = `
		MATCH (n:ProviderIndividual {providerIndividualID: $id})
		OPTIONAL MATCH (n)--(p:Products)
		RETURN coalesce(n.display_name, '') AS display_name,
			coalesce(p.product_name, '') AS product_name,
			'' AS life_science_firm_name
		SKIP $skip
		LIMIT $limit
	`

	ProviderWithFirmsQuery = `
		MATCH (n:ProviderIndividual {providerIndividualID: $id})
		OPTIONAL MATCH (n)--(l:LifeScienceFirm)
		RETURN coalesce(n.display_name, '') AS display_name,
			'' AS product_name,
			coalesce(l.life_science_firm_name, '') AS life_science_firm_name
		SKIP $skip
		LIMIT $limit
	`

	ProviderOnlyQuery = `
		MATCH (n:ProviderIndividual {providerIndividualID: $id})
		RETURN coalesce(n.display_name, '') AS display_name,
			'' AS product_name,
			'' AS life_science_firm_name
		SKIP $skip
		LIMIT $limit
	`
)
