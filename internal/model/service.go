package model

// Service represents one service offering shown on the public site.
// The title carries a unique index and acts as the identity key when
// the seed catalog is reconciled against the table. Category is
// nullable in the database because legacy rows predate the column;
// the reconciler backfills it on startup.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – unique business key of the offering.
//  Description – short public description.
//  Icon        – icon class reference used by the frontend.
//  Details     – free-text detail list.
//  Category    – one of the fixed taxonomy values, empty until backfilled.
type Service struct {
	ID          uint64 // services.id
	Title       string // services.title
	Description string // services.description
	Icon        string // services.icon
	Details     string // services.details
	Category    string // services.category (nullable in DB)
}
