// Package catalog holds the mobile broadband provider catalog: the
// country, provider and plan tables read from the provider database,
// the country name to code table read from the ISO 3166 list, and the
// read-only queries over them.
//
// A Catalog is built once by Load (or Parse) and never changes
// afterwards. Queries which do not resolve return empty results rather
// than errors.
//
//   c, err := catalog.Load()
//   if err != nil {
//       // initialization failed; no partial catalog exists
//   }
//   info, ok := c.PlanInfo("United Kingdom", "O2", "Pay and Go (Prepaid)")
package catalog
